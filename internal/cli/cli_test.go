package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/calc/opening"
	"Barnframe/internal/design"
)

// run executes framectl with args against a store in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--store", filepath.Join(dir, "designs.db")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeDesign(t *testing.T, dir, name string) string {
	t.Helper()
	d := design.New()
	d.StructureName = "Schuur Noord"
	d.Items = []design.Item{
		{Type: design.SectionalDoor, Wall: opening.Front, Position: 4, Width: 3000, Height: 3000},
		{Type: design.Window, Wall: opening.Left, Position: 6, Width: 1000, Height: 1000, Elevation: 1000},
	}
	path := filepath.Join(dir, name)
	if err := design.Save(path, d.Normalize()); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeDesign(t, dir, "schuur.yaml")

	out, err := run(t, dir, "layout", path)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var res frame.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("layout output is not JSON: %v", err)
	}
	if len(res.Members) == 0 || len(res.Summary) == 0 {
		t.Errorf("layout output has %d members and %d groups", len(res.Members), len(res.Summary))
	}
	if len(res.Openings) != 2 {
		t.Errorf("openings = %d, want 2", len(res.Openings))
	}
}

func TestSummaryCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeDesign(t, dir, "schuur.json")

	out, err := run(t, dir, "summary", path)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"Schuur Noord", "Onderdeel", "Kolom"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output misses %q:\n%s", want, out)
		}
	}
}

func TestReportAndExport(t *testing.T) {
	dir := t.TempDir()
	path := writeDesign(t, dir, "schuur.toml")
	pdf := filepath.Join(dir, "out.pdf")
	xlsx := filepath.Join(dir, "out.xlsx")

	if _, err := run(t, dir, "report", path, "-o", pdf); err != nil {
		t.Fatalf("report: %v", err)
	}
	data, err := os.ReadFile(pdf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("report is not a PDF")
	}

	if _, err := run(t, dir, "export", path, "-o", xlsx); err != nil {
		t.Fatalf("export: %v", err)
	}
	if fi, err := os.Stat(xlsx); err != nil || fi.Size() == 0 {
		t.Errorf("export wrote nothing: %v", err)
	}

	// the exported items sheet imports back into a new design
	target := filepath.Join(dir, "nieuw.json")
	if _, err := run(t, dir, "import", xlsx, target); err != nil {
		t.Fatalf("import: %v", err)
	}
	d, err := design.Load(target)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Items) != 2 {
		t.Errorf("imported items = %d, want 2", len(d.Items))
	}
}

func TestStoreCommands(t *testing.T) {
	dir := t.TempDir()
	path := writeDesign(t, dir, "schuur.json")

	out, err := run(t, dir, "save", path)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	idx := strings.Index(out, "id ")
	if idx < 0 {
		t.Fatalf("save output has no id:\n%s", out)
	}
	id := out[idx+3 : idx+3+36] // uuid

	out, err = run(t, dir, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Schuur Noord") {
		t.Errorf("list misses saved design:\n%s", out)
	}

	loaded := filepath.Join(dir, "terug.yaml")
	if _, err := run(t, dir, "load", id, "-o", loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	d, err := design.Load(loaded)
	if err != nil {
		t.Fatal(err)
	}
	if d.StructureName != "Schuur Noord" || len(d.Items) != 2 {
		t.Errorf("loaded design = %q with %d items", d.StructureName, len(d.Items))
	}

	if _, err := run(t, dir, "delete", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := run(t, dir, "delete", id); err == nil {
		t.Error("second delete should fail")
	}
	out, _ = run(t, dir, "list")
	if !strings.Contains(out, "no stored designs") {
		t.Errorf("list after delete:\n%s", out)
	}
}

func TestSettingsFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeDesign(t, dir, "schuur.json")
	settings := filepath.Join(dir, "frame.toml")
	if err := os.WriteFile(settings, []byte("max_bay_spacing = 3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, dir, "--settings", settings, "layout", path)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var res frame.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	// 12 m at 3 m bays
	if res.Derived.LengthBays != 4 {
		t.Errorf("length bays = %d, want 4", res.Derived.LengthBays)
	}
}

func TestMissingDesign(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "layout", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing design file")
	}
}
