package column

import (
	"fmt"
	"math"

	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

// DefaultMaxBaySpacing is the largest allowed distance between frame members.
const DefaultMaxBaySpacing = 5.0

type Role string

const (
	// RoleColumn is a frame column on a side wall; every roof truss rests on one pair.
	RoleColumn Role = "column"
	// RolePost is an intermediate post on a gable wall.
	RolePost Role = "post"
)

// Piece is one vertical stretch of a member, in metres above the floor.
type Piece struct {
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

func (p Piece) Length() float64 { return p.Top - p.Bottom }

type Member struct {
	Wall   opening.Wall `json:"wall"`
	Role   Role         `json:"role"`
	X      float64      `json:"x"`
	Z      float64      `json:"z"`
	Pieces []Piece      `json:"pieces"`
}

// Layout places columns at every length-bay boundary of both side walls and
// posts at every interior width-bay boundary of both gable walls, then splits
// each around the openings it crosses.
func Layout(d geometry.Dimensions, openings []opening.Interval, maxBaySpacing float64) ([]Member, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	along, err := geometry.BayPositions(d.Length, maxBaySpacing)
	if err != nil {
		return nil, fmt.Errorf("length bays: %w", err)
	}
	across, err := geometry.BayPositions(d.Width, maxBaySpacing)
	if err != nil {
		return nil, fmt.Errorf("width bays: %w", err)
	}

	members := make([]Member, 0, 2*len(along)+2*len(across))
	for _, z := range along {
		members = append(members,
			place(d, openings, opening.Left, RoleColumn, -d.Width/2, z),
			place(d, openings, opening.Right, RoleColumn, d.Width/2, z),
		)
	}
	// corners already carry side-wall columns
	for _, x := range across[1 : len(across)-1] {
		members = append(members,
			place(d, openings, opening.Front, RolePost, x, d.Length/2),
			place(d, openings, opening.Back, RolePost, x, -d.Length/2),
		)
	}
	return members, nil
}

func place(d geometry.Dimensions, openings []opening.Interval, wall opening.Wall, role Role, x, z float64) Member {
	return Member{
		Wall:   wall,
		Role:   role,
		X:      x,
		Z:      z,
		Pieces: Split(d.GutterHeight, x, z, openings),
	}
}

// Split returns the pieces of a full-height member at (x, z) left after
// removing the openings it crosses at half gutter height. A corner member lies
// in two wall planes and is tested against both.
func Split(gutterHeight, x, z float64, openings []opening.Interval) []Piece {
	mid := gutterHeight / 2
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, iv := range openings {
		if !iv.OnPlane(x, z) || !iv.CoversPosition(iv.Along(x, z)) || !iv.CoversHeight(mid) {
			continue
		}
		lo = math.Min(lo, iv.YMin)
		hi = math.Max(hi, iv.YMax)
	}
	if math.IsInf(lo, 1) {
		return []Piece{{Bottom: 0, Top: gutterHeight}}
	}

	var pieces []Piece
	if lo > 0 {
		pieces = append(pieces, Piece{Bottom: 0, Top: lo})
	}
	if hi < gutterHeight {
		pieces = append(pieces, Piece{Bottom: hi, Top: gutterHeight})
	}
	return pieces
}

// GablePost is the centre post extending a gable wall from gutter to ridge.
type GablePost struct {
	Wall   opening.Wall `json:"wall"`
	X      float64      `json:"x"`
	Z      float64      `json:"z"`
	Bottom float64      `json:"bottom"`
	Top    float64      `json:"top"`
}

func GablePosts(d geometry.Dimensions) []GablePost {
	peak := d.PeakHeight()
	return []GablePost{
		{Wall: opening.Front, X: 0, Z: d.Length / 2, Bottom: d.GutterHeight, Top: peak},
		{Wall: opening.Back, X: 0, Z: -d.Length / 2, Bottom: d.GutterHeight, Top: peak},
	}
}
