package placement

import (
	"encoding/json"
	"net/http"

	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

// Input places one new item. Width, Height, Elevation and PanelThickness are
// millimetres, Position is metres. A nil Position centres the item.
type Input struct {
	Dimensions     geometry.Dimensions `json:"dimensions"`
	Wall           opening.Wall        `json:"wall"`
	Kind           opening.Kind        `json:"kind"`
	Width          float64             `json:"width"`
	Height         float64             `json:"height"`
	Elevation      *float64            `json:"elevation,omitempty"`
	Position       *float64            `json:"position,omitempty"`
	PanelThickness float64             `json:"panelThickness"`
	Existing       []opening.Opening   `json:"existing"`
}

type Result struct {
	Opening   opening.Opening `json:"opening"`
	Distances Clearance       `json:"distances"`
	Overlaps  bool            `json:"overlaps"`
}

func Place(in Input) (Result, error) {
	if err := in.Dimensions.Validate(); err != nil {
		return Result{}, err
	}
	size := Defaults(in.Kind)
	if in.Width > 0 {
		size.Width = in.Width
	}
	if in.Height > 0 {
		size.Height = in.Height
	}
	if in.Elevation != nil {
		size.Elevation = *in.Elevation
	}
	if in.Kind.Door() {
		size.Elevation = 0
	}

	span := in.Wall.Span(in.Dimensions)
	width := geometry.Meters(size.Width)
	pos := Center(span, width)
	if in.Position != nil {
		pos = Clamp(*in.Position, width, span)
	}
	o := opening.Opening{
		Kind:      in.Kind,
		Wall:      in.Wall,
		Position:  pos,
		Width:     width,
		Height:    geometry.Meters(size.Height),
		Elevation: geometry.Meters(size.Elevation),
	}
	existing := opening.ProjectAll(in.Dimensions, in.Existing)
	return Result{
		Opening:   o,
		Distances: Distances(span, pos, width, geometry.Meters(in.PanelThickness)),
		Overlaps:  Overlaps(existing, opening.Project(in.Dimensions, o)),
	}, nil
}

type Handler struct{}

func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !input.Wall.Valid() {
		http.Error(w, "Unknown wall", http.StatusBadRequest)
		return
	}
	res, err := Place(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
