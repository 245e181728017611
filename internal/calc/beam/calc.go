package beam

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

// Settings controls where wall rails run.
type Settings struct {
	// BaseHeights are always railed when they fit under the gutter.
	BaseHeights []float64 `json:"baseHeights" toml:"base_heights" yaml:"base_heights"`
	// MaxSpacing is the step for extra rails above the highest base height.
	MaxSpacing float64 `json:"maxSpacing" toml:"max_spacing" yaml:"max_spacing"`
	// GableToRidge continues front and back rails into the roof triangle.
	GableToRidge bool `json:"gableToRidge" toml:"gable_to_ridge" yaml:"gable_to_ridge"`
}

func DefaultSettings() Settings {
	return Settings{
		BaseHeights: []float64{0, 0.9, 2.1},
		MaxSpacing:  1.5,
	}
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (s Segment) Length() float64 { return s.End - s.Start }

// Rail is every piece of wall rail at one height of one wall. Start and End
// bound the railed span, which is narrower than the wall only in the gable
// triangle.
type Rail struct {
	Wall     opening.Wall `json:"wall"`
	Height   float64      `json:"height"`
	Start    float64      `json:"start"`
	End      float64      `json:"end"`
	Segments []Segment    `json:"segments"`
}

// Heights lists the rail heights of one wall in ascending order. Side walls
// rail up to and including the gutter. Front and back stop strictly below it,
// or strictly below the peak with GableToRidge. A spacing that would need more
// than geometry.MaxSteps extra rails fails with geometry.ErrInvalidSpan.
func Heights(d geometry.Dimensions, wall opening.Wall, s Settings) ([]float64, error) {
	gutter := d.GutterHeight
	limit := gutter
	if wall.Gable() && s.GableToRidge {
		limit = d.PeakHeight()
	}

	var out []float64
	below := func(h float64) bool {
		if wall.Gable() {
			return h < limit-geometry.Tolerance
		}
		return h <= gutter+geometry.Tolerance
	}
	top := math.Inf(-1)
	for _, h := range s.BaseHeights {
		if h >= 0 && below(h) {
			out = append(out, h)
		}
		top = math.Max(top, h)
	}
	if s.MaxSpacing > 0 && !math.IsInf(top, -1) && top < limit-geometry.Tolerance {
		if _, err := geometry.Steps(limit-top, s.MaxSpacing); err != nil {
			return nil, fmt.Errorf("rail spacing: %w", err)
		}
		for i := 1; ; i++ {
			h := top + float64(i)*s.MaxSpacing
			if h >= limit-geometry.Tolerance {
				break
			}
			out = append(out, h)
		}
	}
	if !wall.Gable() {
		out = append(out, gutter)
	}

	sort.Float64s(out)
	return slices.CompactFunc(out, geometry.Near), nil
}

// Span returns the railed extent at height h. Above the gutter of a gable wall
// the rail narrows with the roof triangle.
func Span(d geometry.Dimensions, wall opening.Wall, h float64) (float64, float64) {
	half := wall.Span(d) / 2
	if wall.Gable() && h > d.GutterHeight {
		half *= math.Max(0, 1-(h-d.GutterHeight)/d.RoofHeight())
	}
	return -half, half
}

// Subtract removes the horizontal extent of cuts from [lo, hi] and returns the
// remaining segments in ascending order.
func Subtract(lo, hi float64, cuts []opening.Interval) []Segment {
	sorted := slices.Clone(cuts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out []Segment
	cursor := lo
	for _, c := range sorted {
		start, end := math.Max(c.Start, lo), math.Min(c.End, hi)
		if end <= cursor || start >= end {
			continue
		}
		if start > cursor+geometry.Tolerance {
			out = append(out, Segment{Start: cursor, End: start})
		}
		cursor = math.Max(cursor, end)
	}
	if cursor < hi-geometry.Tolerance {
		out = append(out, Segment{Start: cursor, End: hi})
	}
	return out
}

// Layout rails every wall, ordered front, back, left, right and by height.
func Layout(d geometry.Dimensions, openings []opening.Interval, s Settings) ([]Rail, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if s.MaxSpacing < 0 || math.IsNaN(s.MaxSpacing) {
		return nil, fmt.Errorf("%w: rail spacing %g", geometry.ErrInvalidSpan, s.MaxSpacing)
	}

	var rails []Rail
	for _, wall := range opening.Walls {
		onWall := opening.OnWall(openings, wall)
		heights, err := Heights(d, wall, s)
		if err != nil {
			return nil, err
		}
		for _, h := range heights {
			var cuts []opening.Interval
			for _, iv := range onWall {
				if iv.CoversHeight(h) {
					cuts = append(cuts, iv)
				}
			}
			lo, hi := Span(d, wall, h)
			rails = append(rails, Rail{
				Wall:     wall,
				Height:   h,
				Start:    lo,
				End:      hi,
				Segments: Subtract(lo, hi, cuts),
			})
		}
	}
	return rails, nil
}
