package placement

import (
	"math"

	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

// Size is an item size in millimetres as entered in the configurator.
type Size struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Elevation float64 `json:"elevation"`
}

// Defaults returns the size a new item of kind k starts with.
func Defaults(k opening.Kind) Size {
	switch k {
	case opening.WalkDoor:
		return Size{Width: 1000, Height: 2300}
	case opening.Window:
		return Size{Width: 2000, Height: 1000, Elevation: 1000}
	default:
		return Size{Width: 3000, Height: 3000}
	}
}

// Center returns the position that centres an item of width on a wall of span.
func Center(span, width float64) float64 {
	return math.Max(0, (span-width)/2)
}

// Clamp keeps an item of width fully on the wall.
func Clamp(position, width, span float64) float64 {
	return math.Min(math.Max(position, 0), math.Max(0, span-width))
}

// Clearance is the distance from an item to both wall ends, measured to the
// steel and to the outside of the wall panels.
type Clearance struct {
	LeftSteel  float64 `json:"leftSteel"`
	RightSteel float64 `json:"rightSteel"`
	LeftPanel  float64 `json:"leftPanel"`
	RightPanel float64 `json:"rightPanel"`
}

func Distances(span, position, width, panel float64) Clearance {
	right := span - position - width
	return Clearance{
		LeftSteel:  position,
		RightSteel: right,
		LeftPanel:  position + panel,
		RightPanel: right + panel,
	}
}

// Overlaps reports whether candidate shares wall area with any valid interval
// on its wall. Touching edges do not overlap.
func Overlaps(intervals []opening.Interval, candidate opening.Interval) bool {
	if !candidate.Valid {
		return false
	}
	for _, iv := range opening.OnWall(intervals, candidate.Wall) {
		if iv.ID != "" && iv.ID == candidate.ID {
			continue
		}
		if iv.Start < candidate.End-geometry.Tolerance && candidate.Start < iv.End-geometry.Tolerance &&
			iv.YMin < candidate.YMax-geometry.Tolerance && candidate.YMin < iv.YMax-geometry.Tolerance {
			return true
		}
	}
	return false
}
