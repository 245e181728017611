package beam

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

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	settings := DefaultSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}
	rails, err := Layout(input.Dimensions, opening.ProjectAll(input.Dimensions, input.Openings), settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rails)
}
