package trim

import (
	"math"

	"Barnframe/internal/calc/beam"
	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

type Role string

const (
	RoleJamb   Role = "jamb"
	RoleHeader Role = "header"
	RoleSill   Role = "sill"
)

// Point is a position on a wall face: U along the wall, Y up.
type Point struct {
	U float64 `json:"u"`
	Y float64 `json:"y"`
}

// Piece is one trim member framing an opening.
type Piece struct {
	OpeningID string       `json:"openingId,omitempty"`
	Wall      opening.Wall `json:"wall"`
	Role      Role         `json:"role"`
	From      Point        `json:"from"`
	To        Point        `json:"to"`
}

func (p Piece) Length() float64 {
	return math.Hypot(p.To.U-p.From.U, p.To.Y-p.From.Y)
}

// Layout frames every valid opening with two jambs and a header. Windows get a
// sill. Door jambs run on to the first wall rail above the door and carry a
// second header there.
func Layout(d geometry.Dimensions, openings []opening.Interval, s beam.Settings) ([]Piece, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	heights := map[opening.Wall][]float64{}
	for _, w := range opening.Walls {
		hs, err := beam.Heights(d, w, s)
		if err != nil {
			return nil, err
		}
		heights[w] = hs
	}

	var out []Piece
	for _, iv := range openings {
		if !iv.Valid {
			continue
		}
		top := iv.YMax
		if iv.Kind.Door() {
			top = math.Max(top, Extension(d, iv, heights[iv.Wall]))
		}
		piece := func(role Role, u0, y0, u1, y1 float64) Piece {
			return Piece{OpeningID: iv.ID, Wall: iv.Wall, Role: role, From: Point{u0, y0}, To: Point{u1, y1}}
		}
		out = append(out,
			piece(RoleJamb, iv.Start, iv.YMin, iv.Start, top),
			piece(RoleJamb, iv.End, iv.YMin, iv.End, top),
			piece(RoleHeader, iv.Start, iv.YMax, iv.End, iv.YMax),
		)
		if top > iv.YMax+geometry.Tolerance {
			out = append(out, piece(RoleHeader, iv.Start, top, iv.End, top))
		}
		if !iv.Kind.Door() {
			out = append(out, piece(RoleSill, iv.Start, iv.YMin, iv.End, iv.YMin))
		}
	}
	return out, nil
}

// Extension returns the height door jambs run up to: the lowest rail strictly
// above the door, or the gutter when no rail is in between.
func Extension(d geometry.Dimensions, door opening.Interval, railHeights []float64) float64 {
	for _, h := range railHeights {
		if h > door.YMax+geometry.Tolerance {
			return math.Min(h, d.GutterHeight)
		}
	}
	return math.Max(door.YMax, d.GutterHeight)
}
