package beam

import (
	"errors"
	"math"
	"testing"

	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

var dims = geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 3, RoofAngle: 25}

func equalHeights(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !geometry.Near(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestHeights(t *testing.T) {
	tests := []struct {
		name string
		d    geometry.Dimensions
		wall opening.Wall
		s    Settings
		want []float64
	}{
		{"front below gutter", dims, opening.Front, DefaultSettings(), []float64{0, 0.9, 2.1}},
		{"left includes gutter", dims, opening.Left, DefaultSettings(), []float64{0, 0.9, 2.1, 3}},
		{"tall side wall", geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 5, RoofAngle: 25}, opening.Right, DefaultSettings(), []float64{0, 0.9, 2.1, 3.6, 5}},
		{"tall gable wall", geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 5, RoofAngle: 25}, opening.Back, DefaultSettings(), []float64{0, 0.9, 2.1, 3.6}},
		{"extra at gutter not doubled", geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 3.6, RoofAngle: 25}, opening.Left, DefaultSettings(), []float64{0, 0.9, 2.1, 3.6}},
		{"gable never at gutter", geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 3.6, RoofAngle: 25}, opening.Front, DefaultSettings(), []float64{0, 0.9, 2.1}},
		{"low building drops base heights", geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 2, RoofAngle: 25}, opening.Left, DefaultSettings(), []float64{0, 0.9, 2}},
		{"gable to ridge", dims, opening.Front, Settings{BaseHeights: []float64{0, 0.9, 2.1}, MaxSpacing: 1.5, GableToRidge: true}, []float64{0, 0.9, 2.1, 3.6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Heights(tt.d, tt.wall, tt.s)
			if err != nil {
				t.Fatal(err)
			}
			if !equalHeights(got, tt.want) {
				t.Errorf("Heights() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeightsRejectsTinySpacing(t *testing.T) {
	for _, spacing := range []float64{1e-17, 1e-6} {
		s := Settings{BaseHeights: []float64{0, 0.9, 2.1}, MaxSpacing: spacing}
		if _, err := Heights(dims, opening.Left, s); !errors.Is(err, geometry.ErrInvalidSpan) {
			t.Errorf("Heights(spacing %g) err = %v, want ErrInvalidSpan", spacing, err)
		}
		if _, err := Layout(dims, nil, s); !errors.Is(err, geometry.ErrInvalidSpan) {
			t.Errorf("Layout(spacing %g) err = %v, want ErrInvalidSpan", spacing, err)
		}
	}
}

func TestHeightsFineSpacing(t *testing.T) {
	// 0.9 m left above 2.1 at 0.01 m steps: 89 extras below the 3 m gutter
	s := Settings{BaseHeights: []float64{0, 0.9, 2.1}, MaxSpacing: 0.01}
	got, err := Heights(dims, opening.Front, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3+89 {
		t.Fatalf("got %d heights, want %d", len(got), 3+89)
	}
	last := got[len(got)-1]
	if !geometry.Near(last, 2.99) {
		t.Errorf("highest rail = %g, want 2.99", last)
	}
}

func TestLayoutNoOpenings(t *testing.T) {
	rails, err := Layout(dims, nil, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if len(rails) != 3+3+4+4 {
		t.Fatalf("got %d rails, want 14", len(rails))
	}
	order := []opening.Wall{opening.Front, opening.Back, opening.Left, opening.Right}
	idx := 0
	for i, r := range rails {
		for order[idx] != r.Wall {
			idx++
		}
		if i > 0 && rails[i-1].Wall == r.Wall && rails[i-1].Height >= r.Height {
			t.Errorf("rails not ascending on %s: %g then %g", r.Wall, rails[i-1].Height, r.Height)
		}
		half := r.Wall.Span(dims) / 2
		if len(r.Segments) != 1 || r.Segments[0] != (Segment{-half, half}) {
			t.Errorf("%s@%g segments = %v, want full span", r.Wall, r.Height, r.Segments)
		}
	}
}

func TestLayoutSectionalDoor(t *testing.T) {
	door := opening.Project(dims, opening.Opening{
		Kind:     opening.SectionalDoor,
		Wall:     opening.Front,
		Position: 2.5,
		Width:    geometry.Meters(3000),
		Height:   geometry.Meters(3000),
	})
	rails, err := Layout(dims, []opening.Interval{door}, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	want := []Segment{{-4, -1.5}, {1.5, 4}}
	for _, r := range rails {
		if r.Wall != opening.Front {
			continue
		}
		if len(r.Segments) != 2 {
			t.Fatalf("front@%g segments = %v, want %v", r.Height, r.Segments, want)
		}
		for i := range want {
			if !geometry.Near(r.Segments[i].Start, want[i].Start) || !geometry.Near(r.Segments[i].End, want[i].End) {
				t.Errorf("front@%g segment %d = %v, want %v", r.Height, i, r.Segments[i], want[i])
			}
		}
	}
}

func TestSubtractCompleteness(t *testing.T) {
	cuts := []opening.Interval{
		{Start: 1, End: 2, Valid: true},
		{Start: -3, End: -2, Valid: true},
		{Start: 1.5, End: 2.5, Valid: true},
		{Start: 3.5, End: 5, Valid: true},
	}
	segs := Subtract(-4, 4, cuts)
	want := []Segment{{-4, -3}, {-2, 1}, {2.5, 3.5}}
	if len(segs) != len(want) {
		t.Fatalf("Subtract() = %v, want %v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, segs[i], want[i])
		}
	}
	// segments plus covered spans rebuild the span
	total := 0.0
	for _, s := range segs {
		total += s.Length()
	}
	covered := 1.0 + 1.5 + 0.5 // [-3,-2], [1,2.5], [3.5,4]
	if math.Abs(total+covered-8) > 1e-9 {
		t.Errorf("segments %g + covered %g != 8", total, covered)
	}
	if cuts[0].Start != 1 {
		t.Error("Subtract reordered the caller's slice")
	}
}

func TestSubtractEdges(t *testing.T) {
	tests := []struct {
		name string
		cuts []opening.Interval
		want int
	}{
		{"no cuts", nil, 1},
		{"full cover", []opening.Interval{{Start: -4, End: 4}}, 0},
		{"flush left", []opening.Interval{{Start: -4, End: -3}}, 1},
		{"outside span", []opening.Interval{{Start: 5, End: 6}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subtract(-4, 4, tt.cuts); len(got) != tt.want {
				t.Errorf("Subtract() = %v, want %d segments", got, tt.want)
			}
		})
	}
}

func TestGableTaper(t *testing.T) {
	s := DefaultSettings()
	s.GableToRidge = true
	rails, err := Layout(dims, nil, s)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, r := range rails {
		if r.Wall != opening.Front || r.Height <= dims.GutterHeight {
			continue
		}
		found = true
		want := dims.Width * (1 - (r.Height-dims.GutterHeight)/dims.RoofHeight())
		if got := r.End - r.Start; !geometry.Near(got, want) {
			t.Errorf("tapered width at %g = %g, want %g", r.Height, got, want)
		}
		if !geometry.Near(r.Start, -r.End) {
			t.Errorf("tapered rail not centred: [%g,%g]", r.Start, r.End)
		}
	}
	if !found {
		t.Error("no rail above gutter on front wall")
	}
}

func TestLayoutIgnoresDegenerate(t *testing.T) {
	bad := opening.Project(dims, opening.Opening{Kind: opening.Window, Wall: opening.Left, Position: 11.5, Width: 2, Height: 1, Elevation: 0.5})
	rails, err := Layout(dims, []opening.Interval{bad}, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rails {
		if len(r.Segments) != 1 {
			t.Errorf("%s@%g split by invalid opening", r.Wall, r.Height)
		}
	}
}

func TestLayoutRejectsInvalid(t *testing.T) {
	_, err := Layout(geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 3, RoofAngle: 90}, nil, DefaultSettings())
	var verr *geometry.ValidationError
	if !errors.As(err, &verr) || verr.Field != "roofAngle" {
		t.Errorf("err = %v, want roofAngle validation error", err)
	}
}
