package roof

import (
	"fmt"
	"math"

	"Barnframe/internal/calc/geometry"
)

const (
	DefaultMaxSlopeSpacing = 1.5
	// DefaultRidgeGap separates the twin ridge purlins.
	DefaultRidgeGap = 0.1
)

type Kind string

const (
	KindGutter       Kind = "gutter"
	KindIntermediate Kind = "intermediate"
	KindRidge        Kind = "ridge"
)

// Point lies in the gable cross-section: x across the width, y up.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Purlin is a mirrored pair of roof purlins, one on each slope.
type Purlin struct {
	Kind  Kind  `json:"kind"`
	Left  Point `json:"left"`
	Right Point `json:"right"`
	// Offset is the distance from the gutter measured along the rafter.
	Offset float64 `json:"offset"`
}

func Purlins(width, gutterHeight, roofAngle, maxSlopeSpacing float64) ([]Purlin, error) {
	return PurlinsWithGap(width, gutterHeight, roofAngle, maxSlopeSpacing, DefaultRidgeGap)
}

// PurlinsWithGap lays out the gutter line, evenly spaced intermediates along
// the true rafter slope and the ridge pair.
func PurlinsWithGap(width, gutterHeight, roofAngle, maxSlopeSpacing, ridgeGap float64) ([]Purlin, error) {
	d := geometry.Dimensions{Width: width, Length: 1, GutterHeight: gutterHeight, RoofAngle: roofAngle}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if !(maxSlopeSpacing > 0) {
		return nil, fmt.Errorf("%w: slope spacing %g", geometry.ErrInvalidSpan, maxSlopeSpacing)
	}
	if ridgeGap < 0 || ridgeGap >= width {
		return nil, fmt.Errorf("%w: ridge gap %g", geometry.ErrInvalidSpan, ridgeGap)
	}

	rh := d.RoofHeight()
	slope := geometry.SlopeLength(width, rh)
	angle := geometry.RafterAngle(width, rh)
	steps, err := geometry.Steps(slope, maxSlopeSpacing)
	if err != nil {
		return nil, fmt.Errorf("purlin spacing: %w", err)
	}
	n := steps - 1
	spacing := slope / float64(n+1)

	out := make([]Purlin, 0, n+2)
	out = append(out, Purlin{
		Kind:  KindGutter,
		Left:  Point{X: -width / 2, Y: gutterHeight},
		Right: Point{X: width / 2, Y: gutterHeight},
	})
	for i := 1; i <= n; i++ {
		along := float64(i) * spacing
		x := width/2 - along*math.Cos(angle)
		y := gutterHeight + along*math.Sin(angle)
		out = append(out, Purlin{
			Kind:   KindIntermediate,
			Left:   Point{X: -x, Y: y},
			Right:  Point{X: x, Y: y},
			Offset: along,
		})
	}
	out = append(out, Purlin{
		Kind:   KindRidge,
		Left:   Point{X: -ridgeGap / 2, Y: d.PeakHeight()},
		Right:  Point{X: ridgeGap / 2, Y: d.PeakHeight()},
		Offset: slope,
	})
	return out, nil
}

// Truss is a rafter pair on one length-bay boundary.
type Truss struct {
	Z           float64 `json:"z"`
	Left        Point   `json:"left"`
	Right       Point   `json:"right"`
	Peak        Point   `json:"peak"`
	SlopeLength float64 `json:"slopeLength"`
	Angle       float64 `json:"angle"` // degrees
}

func Trusses(d geometry.Dimensions, maxBaySpacing float64) ([]Truss, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	zs, err := geometry.BayPositions(d.Length, maxBaySpacing)
	if err != nil {
		return nil, err
	}
	rh := d.RoofHeight()
	angle := geometry.RafterAngle(d.Width, rh) * 180 / math.Pi
	out := make([]Truss, 0, len(zs))
	for _, z := range zs {
		out = append(out, Truss{
			Z:           z,
			Left:        Point{X: -d.Width / 2, Y: d.GutterHeight},
			Right:       Point{X: d.Width / 2, Y: d.GutterHeight},
			Peak:        Point{X: 0, Y: d.PeakHeight()},
			SlopeLength: d.SlopeLength(),
			Angle:       angle,
		})
	}
	return out, nil
}
