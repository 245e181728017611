package opening

import (
	"fmt"

	"Barnframe/internal/calc/geometry"
)

type Wall string

const (
	Front Wall = "front"
	Back  Wall = "back"
	Left  Wall = "left"
	Right Wall = "right"
)

// Walls in the order every layout lists them.
var Walls = []Wall{Front, Back, Left, Right}

func (w Wall) Valid() bool {
	switch w {
	case Front, Back, Left, Right:
		return true
	}
	return false
}

// Gable reports whether the wall runs along the width axis and carries the
// roof triangle above gutter height.
func (w Wall) Gable() bool {
	return w == Front || w == Back
}

// Span is the horizontal length of the wall.
func (w Wall) Span(d geometry.Dimensions) float64 {
	if w.Gable() {
		return d.Width
	}
	return d.Length
}

// Plane is the fixed coordinate of the wall: z for front/back, x for left/right.
func (w Wall) Plane(d geometry.Dimensions) float64 {
	switch w {
	case Front:
		return d.Length / 2
	case Back:
		return -d.Length / 2
	case Left:
		return -d.Width / 2
	default:
		return d.Width / 2
	}
}

type Kind string

const (
	SectionalDoor Kind = "sectional_door"
	WalkDoor      Kind = "walk_door"
	Window        Kind = "window"
)

func (k Kind) Door() bool {
	return k == SectionalDoor || k == WalkDoor
}

// Opening is a door or window placed on a wall, in metres.
type Opening struct {
	ID        string  `json:"id,omitempty"`
	Kind      Kind    `json:"kind"`
	Wall      Wall    `json:"wall"`
	Position  float64 `json:"position"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Elevation float64 `json:"elevation"`
}

// Interval is an opening projected into building coordinates. Start and End
// run along x for front/back and along z for left/right.
type Interval struct {
	ID    string  `json:"id,omitempty"`
	Kind  Kind    `json:"kind"`
	Wall  Wall    `json:"wall"`
	Plane float64 `json:"plane"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	YMin  float64 `json:"yMin"`
	YMax  float64 `json:"yMax"`
	Valid bool    `json:"valid"`
}

// Project places o on its wall. Back and right walls are not mirrored: position
// always grows along +x (front/back) or +z (left/right).
func Project(d geometry.Dimensions, o Opening) Interval {
	iv := Interval{ID: o.ID, Kind: o.Kind, Wall: o.Wall}
	if !o.Wall.Valid() {
		return iv
	}
	span := o.Wall.Span(d)
	iv.Plane = o.Wall.Plane(d)
	iv.Start = -span/2 + o.Position
	iv.End = iv.Start + o.Width
	if !o.Kind.Door() {
		iv.YMin = o.Elevation
	}
	iv.YMax = iv.YMin + o.Height
	iv.Valid = o.Width > 0 && o.Height > 0 && iv.YMin >= 0 &&
		o.Position >= -geometry.Tolerance && o.Position+o.Width <= span+geometry.Tolerance
	return iv
}

func ProjectAll(d geometry.Dimensions, openings []Opening) []Interval {
	out := make([]Interval, 0, len(openings))
	for _, o := range openings {
		out = append(out, Project(d, o))
	}
	return out
}

// CoversHeight reports whether a horizontal member at y runs into the opening.
func (iv Interval) CoversHeight(y float64) bool {
	return iv.Valid && iv.YMin <= y && y <= iv.YMax
}

// CoversPosition reports whether p along the wall lies within the opening.
func (iv Interval) CoversPosition(p float64) bool {
	return iv.Valid && iv.Start <= p && p <= iv.End
}

// OnPlane reports whether a point with the given x/z lies in the opening's wall.
func (iv Interval) OnPlane(x, z float64) bool {
	if iv.Wall.Gable() {
		return geometry.Near(z, iv.Plane)
	}
	return geometry.Near(x, iv.Plane)
}

// Along returns the coordinate of (x, z) along the opening's wall.
func (iv Interval) Along(x, z float64) float64 {
	if iv.Wall.Gable() {
		return x
	}
	return z
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s %s [%.3f,%.3f]x[%.3f,%.3f]", iv.Wall, iv.Kind, iv.Start, iv.End, iv.YMin, iv.YMax)
}

// OnWall filters intervals to the valid ones on w.
func OnWall(intervals []Interval, w Wall) []Interval {
	var out []Interval
	for _, iv := range intervals {
		if iv.Valid && iv.Wall == w {
			out = append(out, iv)
		}
	}
	return out
}
