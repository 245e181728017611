package opening

import (
	"encoding/json"
	"net/http"

	"Barnframe/internal/calc/geometry"
)

type Input struct {
	Dimensions geometry.Dimensions `json:"dimensions"`
	Openings   []Opening           `json:"openings"`
}

type Handler struct{}

func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := input.Dimensions.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProjectAll(input.Dimensions, input.Openings))
}
