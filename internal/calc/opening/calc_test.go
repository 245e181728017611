package opening

import (
	"testing"

	"Barnframe/internal/calc/geometry"
)

var dims = geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 3, RoofAngle: 25}

func TestProjectSectionalDoor(t *testing.T) {
	iv := Project(dims, Opening{Kind: SectionalDoor, Wall: Front, Position: 2.5, Width: 3, Height: 3})
	if !iv.Valid {
		t.Fatalf("interval invalid: %v", iv)
	}
	if iv.Start != -1.5 || iv.End != 1.5 || iv.YMin != 0 || iv.YMax != 3 {
		t.Errorf("got %v, want [-1.5,1.5]x[0,3]", iv)
	}
	if iv.Plane != 6 {
		t.Errorf("plane = %g, want 6", iv.Plane)
	}
}

func TestProjectWallsNotMirrored(t *testing.T) {
	tests := []struct {
		wall              Wall
		plane, start, end float64
	}{
		{Front, 6, -3, -2},
		{Back, -6, -3, -2},
		{Left, -4, -5, -4},
		{Right, 4, -5, -4},
	}
	for _, tt := range tests {
		iv := Project(dims, Opening{Kind: WalkDoor, Wall: tt.wall, Position: 1, Width: 1, Height: 2.3})
		if iv.Plane != tt.plane || iv.Start != tt.start || iv.End != tt.end {
			t.Errorf("%s: got plane %g [%g,%g], want plane %g [%g,%g]",
				tt.wall, iv.Plane, iv.Start, iv.End, tt.plane, tt.start, tt.end)
		}
	}
}

func TestProjectWindowElevation(t *testing.T) {
	iv := Project(dims, Opening{Kind: Window, Wall: Left, Position: 4, Width: 2, Height: 1, Elevation: 1})
	if iv.YMin != 1 || iv.YMax != 2 {
		t.Errorf("window y = [%g,%g], want [1,2]", iv.YMin, iv.YMax)
	}
	door := Project(dims, Opening{Kind: WalkDoor, Wall: Left, Position: 4, Width: 1, Height: 2.3, Elevation: 1})
	if door.YMin != 0 {
		t.Errorf("door yMin = %g, want 0", door.YMin)
	}
}

func TestProjectDegenerate(t *testing.T) {
	tests := []struct {
		name string
		o    Opening
	}{
		{"zero width", Opening{Kind: Window, Wall: Front, Position: 1, Width: 0, Height: 1}},
		{"negative height", Opening{Kind: Window, Wall: Front, Position: 1, Width: 1, Height: -1}},
		{"before wall", Opening{Kind: Window, Wall: Front, Position: -0.5, Width: 1, Height: 1}},
		{"past wall", Opening{Kind: Window, Wall: Front, Position: 7.5, Width: 1, Height: 1}},
		{"unknown wall", Opening{Kind: Window, Wall: "roof", Position: 1, Width: 1, Height: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := Project(dims, tt.o)
			if iv.Valid {
				t.Errorf("expected invalid interval, got %v", iv)
			}
			if iv.CoversHeight(0.5) || iv.CoversPosition(iv.Start) {
				t.Errorf("invalid interval must not cover anything")
			}
		})
	}
}

func TestOnPlane(t *testing.T) {
	front := Project(dims, Opening{Kind: Window, Wall: Front, Position: 1, Width: 1, Height: 1})
	if !front.OnPlane(-4, 6) || front.OnPlane(-4, 0) {
		t.Errorf("front plane test wrong")
	}
	left := Project(dims, Opening{Kind: Window, Wall: Left, Position: 1, Width: 1, Height: 1})
	if !left.OnPlane(-4, 6) || left.OnPlane(4, 6) {
		t.Errorf("left plane test wrong")
	}
}
