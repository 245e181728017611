package sheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/design"
)

type Handler struct {
	Settings frame.Settings
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
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
	if err := Export(&buf, input, layout); err != nil {
		log.Error("xlsx export failed", "design", input.StructureName, "err", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	name := FileName(input)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(buf.Bytes())
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := ImportItems(file)
	if errors.Is(err, ErrEmptySheet) {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// FileName is the download name of the member sheet of d.
func FileName(d design.Design) string {
	return strings.TrimSuffix(d.FileName(""), "_backup") + "_staal.xlsx"
}
