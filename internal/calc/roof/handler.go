package roof

import (
	"encoding/json"
	"net/http"

	"Barnframe/internal/calc/geometry"
)

type Input struct {
	Dimensions      geometry.Dimensions `json:"dimensions"`
	MaxSlopeSpacing float64             `json:"maxSlopeSpacing"`
	MaxBaySpacing   float64             `json:"maxBaySpacing"`
}

type Result struct {
	Purlins []Purlin `json:"purlins"`
	Trusses []Truss  `json:"trusses"`
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.MaxSlopeSpacing <= 0 {
		input.MaxSlopeSpacing = DefaultMaxSlopeSpacing
	}
	if input.MaxBaySpacing <= 0 {
		input.MaxBaySpacing = 5
	}
	d := input.Dimensions
	purlins, err := Purlins(d.Width, d.GutterHeight, d.RoofAngle, input.MaxSlopeSpacing)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	trusses, err := Trusses(d, input.MaxBaySpacing)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Result{Purlins: purlins, Trusses: trusses})
}
