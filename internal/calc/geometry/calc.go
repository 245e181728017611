package geometry

import (
	"fmt"
	"math"
)

// bayEpsilon absorbs floating point noise in span/maxSpacing so that 12/4 is
// three bays and not four.
const bayEpsilon = 1e-9

type Dimensions struct {
	Width        float64 `json:"width" yaml:"width" toml:"width"`
	Length       float64 `json:"length" yaml:"length" toml:"length"`
	GutterHeight float64 `json:"gutterHeight" yaml:"gutterHeight" toml:"gutterHeight"`
	RoofAngle    float64 `json:"roofAngle" yaml:"roofAngle" toml:"roofAngle"`
}

// Validate rejects dimensions that would produce NaN or degenerate geometry.
func (d Dimensions) Validate() error {
	switch {
	case !(d.Width > 0) || math.IsInf(d.Width, 0):
		return &ValidationError{Field: "width", Value: d.Width, Reason: "must be positive"}
	case !(d.Length > 0) || math.IsInf(d.Length, 0):
		return &ValidationError{Field: "length", Value: d.Length, Reason: "must be positive"}
	case !(d.GutterHeight > 0) || math.IsInf(d.GutterHeight, 0):
		return &ValidationError{Field: "gutterHeight", Value: d.GutterHeight, Reason: "must be positive"}
	case !(d.RoofAngle > 0 && d.RoofAngle < 90):
		return &ValidationError{Field: "roofAngle", Value: d.RoofAngle, Reason: "must be between 0 and 90 degrees"}
	}
	return nil
}

func (d Dimensions) RoofHeight() float64 {
	return RoofHeight(d.Width, d.RoofAngle)
}

func (d Dimensions) PeakHeight() float64 {
	return PeakHeight(d.GutterHeight, d.RoofHeight())
}

func (d Dimensions) SlopeLength() float64 {
	return SlopeLength(d.Width, d.RoofHeight())
}

func RoofHeight(width, angleDeg float64) float64 {
	return width / 2 * math.Tan(Radians(angleDeg))
}

func PeakHeight(gutterHeight, roofHeight float64) float64 {
	return gutterHeight + roofHeight
}

// SlopeLength is the rafter length from gutter to ridge.
func SlopeLength(width, roofHeight float64) float64 {
	return math.Hypot(width/2, roofHeight)
}

// RafterAngle returns the true slope angle in radians.
func RafterAngle(width, roofHeight float64) float64 {
	return math.Atan2(roofHeight, width/2)
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// MaxSteps bounds how many bays, rails or purlins one span may be divided
// into.
const MaxSteps = 10000

// Steps is the minimum number of equal steps over span such that none exceeds
// spacing. Divisions finer than MaxSteps fail with ErrInvalidSpan.
func Steps(span, spacing float64) (int, error) {
	if !(span > 0) || math.IsInf(span, 0) {
		return 0, fmt.Errorf("%w: span %g", ErrInvalidSpan, span)
	}
	if !(spacing > 0) {
		return 0, fmt.Errorf("%w: max spacing %g", ErrInvalidSpan, spacing)
	}
	ratio := span / spacing
	if !(ratio <= MaxSteps) {
		return 0, fmt.Errorf("%w: span %g at spacing %g needs more than %d steps", ErrInvalidSpan, span, spacing, MaxSteps)
	}
	n := int(math.Ceil(ratio - bayEpsilon))
	if n < 1 {
		n = 1
	}
	return n, nil
}

// BayCount is the minimum number of equal bays over span such that none
// exceeds maxSpacing.
func BayCount(span, maxSpacing float64) (int, error) {
	return Steps(span, maxSpacing)
}

func ActualSpacing(span float64, bays int) (float64, error) {
	if bays <= 0 {
		return 0, fmt.Errorf("%w: %d bays", ErrInvalidSpan, bays)
	}
	if !(span > 0) {
		return 0, fmt.Errorf("%w: span %g", ErrInvalidSpan, span)
	}
	return span / float64(bays), nil
}

// BayPositions returns the bay boundaries of a span centred on the origin,
// from -span/2 to span/2 inclusive.
func BayPositions(span, maxSpacing float64) ([]float64, error) {
	bays, err := BayCount(span, maxSpacing)
	if err != nil {
		return nil, err
	}
	spacing, err := ActualSpacing(span, bays)
	if err != nil {
		return nil, err
	}
	out := make([]float64, bays+1)
	for i := range out {
		out[i] = -span/2 + float64(i)*spacing
	}
	out[bays] = span / 2
	return out, nil
}

// Meters converts a user-facing millimetre value.
func Meters(mm float64) float64 {
	return mm / 1000
}

func MM(m float64) float64 {
	return m * 1000
}

// Near reports whether a and b are equal within the layout tolerance.
func Near(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}

// Tolerance used for same-plane and boundary comparisons, in metres.
const Tolerance = 1e-6
