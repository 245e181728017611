package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/calc/opening"
	"Barnframe/internal/design"
)

func sample() design.Design {
	d := design.New()
	d.StructureName = "Schuur Jansen"
	d.Orientation = design.Orientation{ShowFront: true, ShowLeft: true}
	d.Items = []design.Item{
		{Type: design.SectionalDoor, Wall: opening.Front, Position: 2.5, Width: 3000, Height: 3000},
		{Type: design.Window, Wall: opening.Left, Position: 4, Width: 2000, Height: 1000, Elevation: 1000},
	}
	return d.Normalize()
}

func TestRender(t *testing.T) {
	d := sample()
	l, err := frame.Build(d.Dimensions, d.Openings(), frame.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, d, l, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestRenderNoItems(t *testing.T) {
	d := design.New()
	d.Orientation = design.Orientation{}
	l, err := frame.Build(d.Dimensions, nil, frame.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, d, l, time.Now()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("empty report")
	}
}

func TestHandler(t *testing.T) {
	h := &Handler{Settings: frame.DefaultSettings()}
	body, _ := json.Marshal(sample())
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/tools/frame/report/pdf", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Schuur_Jansen_rapport.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/tools/frame/report/pdf", strings.NewReader(`{"dimensions":{"width":-1}}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid design status = %d, want 400", rec.Code)
	}
}
