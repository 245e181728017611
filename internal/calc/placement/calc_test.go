package placement

import (
	"testing"

	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

var dims = geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 3, RoofAngle: 25}

func TestDefaults(t *testing.T) {
	tests := []struct {
		kind opening.Kind
		want Size
	}{
		{opening.SectionalDoor, Size{3000, 3000, 0}},
		{opening.WalkDoor, Size{1000, 2300, 0}},
		{opening.Window, Size{2000, 1000, 1000}},
	}
	for _, tt := range tests {
		if got := Defaults(tt.kind); got != tt.want {
			t.Errorf("Defaults(%s) = %+v, want %+v", tt.kind, got, tt.want)
		}
	}
}

func TestCenterAndClamp(t *testing.T) {
	if got := Center(8, 3); got != 2.5 {
		t.Errorf("Center(8, 3) = %g, want 2.5", got)
	}
	if got := Center(2, 3); got != 0 {
		t.Errorf("Center(2, 3) = %g, want 0", got)
	}
	tests := []struct {
		pos, want float64
	}{
		{-1, 0},
		{2, 2},
		{6, 5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.pos, 3, 8); got != tt.want {
			t.Errorf("Clamp(%g) = %g, want %g", tt.pos, got, tt.want)
		}
	}
}

func TestDistances(t *testing.T) {
	got := Distances(8, 2.5, 3, 0.06)
	want := Clearance{LeftSteel: 2.5, RightSteel: 2.5, LeftPanel: 2.56, RightPanel: 2.56}
	if !geometry.Near(got.LeftSteel, want.LeftSteel) || !geometry.Near(got.RightSteel, want.RightSteel) ||
		!geometry.Near(got.LeftPanel, want.LeftPanel) || !geometry.Near(got.RightPanel, want.RightPanel) {
		t.Errorf("Distances() = %+v, want %+v", got, want)
	}
}

func TestOverlaps(t *testing.T) {
	door := opening.Project(dims, opening.Opening{ID: "a", Kind: opening.SectionalDoor, Wall: opening.Front, Position: 2.5, Width: 3, Height: 3})
	tests := []struct {
		name string
		o    opening.Opening
		want bool
	}{
		{"same spot", opening.Opening{Kind: opening.WalkDoor, Wall: opening.Front, Position: 3, Width: 1, Height: 2.3}, true},
		{"touching edge", opening.Opening{Kind: opening.WalkDoor, Wall: opening.Front, Position: 5.5, Width: 1, Height: 2.3}, false},
		{"other wall", opening.Opening{Kind: opening.WalkDoor, Wall: opening.Back, Position: 3, Width: 1, Height: 2.3}, false},
		{"itself", opening.Opening{ID: "a", Kind: opening.SectionalDoor, Wall: opening.Front, Position: 2.5, Width: 3, Height: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps([]opening.Interval{door}, opening.Project(dims, tt.o)); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlace(t *testing.T) {
	res, err := Place(Input{Dimensions: dims, Wall: opening.Left, Kind: opening.Window, PanelThickness: 60})
	if err != nil {
		t.Fatal(err)
	}
	o := res.Opening
	if o.Width != 2 || o.Height != 1 || o.Elevation != 1 || o.Position != 5 {
		t.Errorf("placed window = %+v", o)
	}
	if !geometry.Near(res.Distances.RightPanel, 5.06) {
		t.Errorf("right panel distance = %g, want 5.06", res.Distances.RightPanel)
	}

	pos := 7.5
	res, err = Place(Input{Dimensions: dims, Wall: opening.Front, Kind: opening.WalkDoor, Position: &pos})
	if err != nil {
		t.Fatal(err)
	}
	if res.Opening.Position != 7 {
		t.Errorf("clamped position = %g, want 7", res.Opening.Position)
	}
}
