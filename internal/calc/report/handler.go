package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/design"
)

type Handler struct {
	Settings frame.Settings
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input design.Design
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	layout, err := frame.Build(input.Dimensions, input.Openings(), h.Settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, input, layout, time.Now()); err != nil {
		log.Error("report generation failed", "design", input.StructureName, "err", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", FileName(input)))
	w.Write(buf.Bytes())
}

// FileName is the download name of the report of d.
func FileName(d design.Design) string {
	return strings.TrimSuffix(d.FileName(""), "_backup") + "_rapport.pdf"
}
