package frame

import (
	"encoding/json"
	"net/http"

	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

type Input struct {
	Dimensions geometry.Dimensions `json:"dimensions"`
	Openings   []opening.Opening   `json:"openings"`
	Settings   *Settings           `json:"settings,omitempty"`
}

type Result struct {
	Layout
	Summary []GroupSummary `json:"summary"`
}

// Handler serves full layouts. Settings are the server-wide defaults a
// request may override.
type Handler struct {
	Settings Settings
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	settings := h.Settings
	if input.Settings != nil {
		settings = *input.Settings
	}
	layout, err := Build(input.Dimensions, input.Openings, settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Result{Layout: layout, Summary: layout.Summary()})
}
