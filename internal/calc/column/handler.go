package column

import (
	"encoding/json"
	"net/http"

	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

type Input struct {
	Dimensions    geometry.Dimensions `json:"dimensions"`
	Openings      []opening.Opening   `json:"openings"`
	MaxBaySpacing float64             `json:"maxBaySpacing"`
}

type Result struct {
	Members    []Member    `json:"members"`
	GablePosts []GablePost `json:"gablePosts"`
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.MaxBaySpacing <= 0 {
		input.MaxBaySpacing = DefaultMaxBaySpacing
	}
	members, err := Layout(input.Dimensions, opening.ProjectAll(input.Dimensions, input.Openings), input.MaxBaySpacing)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Result{Members: members, GablePosts: GablePosts(input.Dimensions)})
}
