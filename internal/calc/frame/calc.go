package frame

import (
	"fmt"
	"math"

	"Barnframe/internal/calc/beam"
	"Barnframe/internal/calc/column"
	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
	"Barnframe/internal/calc/roof"
	"Barnframe/internal/calc/trim"
)

type Group string

const (
	GroupColumn    Group = "column"
	GroupPost      Group = "post"
	GroupGablePost Group = "gable_post"
	GroupRail      Group = "rail"
	GroupPurlin    Group = "purlin"
	GroupRafter    Group = "rafter"
	GroupTrim      Group = "trim"
)

// Groups in report order.
var Groups = []Group{GroupColumn, GroupPost, GroupGablePost, GroupRail, GroupPurlin, GroupRafter, GroupTrim}

// Section is a member cross-section in metres.
type Section struct {
	Width float64 `json:"width" toml:"width" yaml:"width"`
	Depth float64 `json:"depth" toml:"depth" yaml:"depth"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Member is one straight box in building coordinates.
type Member struct {
	Group   Group        `json:"group"`
	Wall    opening.Wall `json:"wall,omitempty"`
	Start   Vec3         `json:"start"`
	End     Vec3         `json:"end"`
	Section Section      `json:"section"`
}

func (m Member) Length() float64 {
	dx, dy, dz := m.End.X-m.Start.X, m.End.Y-m.Start.Y, m.End.Z-m.Start.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

type Settings struct {
	MaxBaySpacing   float64   `json:"maxBaySpacing" toml:"max_bay_spacing" yaml:"max_bay_spacing"`
	MaxSlopeSpacing float64   `json:"maxSlopeSpacing" toml:"max_slope_spacing" yaml:"max_slope_spacing"`
	RailBaseHeights []float64 `json:"railBaseHeights" toml:"rail_base_heights" yaml:"rail_base_heights"`
	RailSpacing     float64   `json:"railSpacing" toml:"rail_spacing" yaml:"rail_spacing"`
	RidgeGap        float64   `json:"ridgeGap" toml:"ridge_gap" yaml:"ridge_gap"`
	GableToRidge    bool      `json:"gableToRidge" toml:"gable_to_ridge" yaml:"gable_to_ridge"`

	ColumnSection Section `json:"columnSection" toml:"column_section" yaml:"column_section"`
	PostSection   Section `json:"postSection" toml:"post_section" yaml:"post_section"`
	RailSection   Section `json:"railSection" toml:"rail_section" yaml:"rail_section"`
	PurlinSection Section `json:"purlinSection" toml:"purlin_section" yaml:"purlin_section"`
}

func DefaultSettings() Settings {
	rails := beam.DefaultSettings()
	light := Section{Width: 0.08, Depth: 0.25}
	return Settings{
		MaxBaySpacing:   column.DefaultMaxBaySpacing,
		MaxSlopeSpacing: roof.DefaultMaxSlopeSpacing,
		RailBaseHeights: rails.BaseHeights,
		RailSpacing:     rails.MaxSpacing,
		RidgeGap:        roof.DefaultRidgeGap,
		ColumnSection:   Section{Width: 0.20, Depth: 0.25},
		PostSection:     light,
		RailSection:     light,
		PurlinSection:   light,
	}
}

// WithDefaults fills every unset field from DefaultSettings. An explicit
// empty RailBaseHeights is kept.
func (s Settings) WithDefaults() Settings {
	def := DefaultSettings()
	if s.MaxBaySpacing <= 0 {
		s.MaxBaySpacing = def.MaxBaySpacing
	}
	if s.MaxSlopeSpacing <= 0 {
		s.MaxSlopeSpacing = def.MaxSlopeSpacing
	}
	if s.RailBaseHeights == nil {
		s.RailBaseHeights = def.RailBaseHeights
	}
	if s.RailSpacing <= 0 {
		s.RailSpacing = def.RailSpacing
	}
	if s.RidgeGap <= 0 {
		s.RidgeGap = def.RidgeGap
	}
	s.ColumnSection = s.ColumnSection.or(def.ColumnSection)
	s.PostSection = s.PostSection.or(def.PostSection)
	s.RailSection = s.RailSection.or(def.RailSection)
	s.PurlinSection = s.PurlinSection.or(def.PurlinSection)
	return s
}

func (c Section) or(def Section) Section {
	if c.Width <= 0 || c.Depth <= 0 {
		return def
	}
	return c
}

func (s Settings) Rails() beam.Settings {
	return beam.Settings{BaseHeights: s.RailBaseHeights, MaxSpacing: s.RailSpacing, GableToRidge: s.GableToRidge}
}

// Derived holds the scalar roof geometry of a layout.
type Derived struct {
	RoofHeight  float64 `json:"roofHeight"`
	PeakHeight  float64 `json:"peakHeight"`
	SlopeLength float64 `json:"slopeLength"`
	WidthBays   int     `json:"widthBays"`
	LengthBays  int     `json:"lengthBays"`
	WidthBay    float64 `json:"widthBay"`
	LengthBay   float64 `json:"lengthBay"`
}

type Layout struct {
	Dimensions geometry.Dimensions `json:"dimensions"`
	Derived    Derived             `json:"derived"`
	Openings   []opening.Interval  `json:"openings"`
	Columns    []column.Member     `json:"columns"`
	GablePosts []column.GablePost  `json:"gablePosts"`
	Rails      []beam.Rail         `json:"rails"`
	Purlins    []roof.Purlin       `json:"purlins"`
	Trusses    []roof.Truss        `json:"trusses"`
	Trims      []trim.Piece        `json:"trims"`
	Members    []Member            `json:"members"`
}

// Build derives the complete frame of one building from a snapshot of its
// openings.
func Build(d geometry.Dimensions, openings []opening.Opening, s Settings) (Layout, error) {
	if err := d.Validate(); err != nil {
		return Layout{}, err
	}
	s = s.WithDefaults()

	l := Layout{Dimensions: d, Openings: opening.ProjectAll(d, openings)}
	var err error
	if l.Derived, err = derive(d, s); err != nil {
		return Layout{}, err
	}
	if l.Columns, err = column.Layout(d, l.Openings, s.MaxBaySpacing); err != nil {
		return Layout{}, fmt.Errorf("columns: %w", err)
	}
	l.GablePosts = column.GablePosts(d)
	if l.Rails, err = beam.Layout(d, l.Openings, s.Rails()); err != nil {
		return Layout{}, fmt.Errorf("rails: %w", err)
	}
	if l.Purlins, err = roof.PurlinsWithGap(d.Width, d.GutterHeight, d.RoofAngle, s.MaxSlopeSpacing, s.RidgeGap); err != nil {
		return Layout{}, fmt.Errorf("purlins: %w", err)
	}
	if l.Trusses, err = roof.Trusses(d, s.MaxBaySpacing); err != nil {
		return Layout{}, fmt.Errorf("trusses: %w", err)
	}
	if l.Trims, err = trim.Layout(d, l.Openings, s.Rails()); err != nil {
		return Layout{}, fmt.Errorf("trims: %w", err)
	}
	l.Members = members(l, s)
	return l, nil
}

func derive(d geometry.Dimensions, s Settings) (Derived, error) {
	wb, err := geometry.BayCount(d.Width, s.MaxBaySpacing)
	if err != nil {
		return Derived{}, err
	}
	lb, err := geometry.BayCount(d.Length, s.MaxBaySpacing)
	if err != nil {
		return Derived{}, err
	}
	return Derived{
		RoofHeight:  d.RoofHeight(),
		PeakHeight:  d.PeakHeight(),
		SlopeLength: d.SlopeLength(),
		WidthBays:   wb,
		LengthBays:  lb,
		WidthBay:    d.Width / float64(wb),
		LengthBay:   d.Length / float64(lb),
	}, nil
}

// onWall maps a wall-face coordinate to building coordinates.
func onWall(d geometry.Dimensions, w opening.Wall, u, y float64) Vec3 {
	if w.Gable() {
		return Vec3{X: u, Y: y, Z: w.Plane(d)}
	}
	return Vec3{X: w.Plane(d), Y: y, Z: u}
}

func members(l Layout, s Settings) []Member {
	d := l.Dimensions
	var out []Member

	for _, c := range l.Columns {
		group, section := GroupColumn, s.ColumnSection
		if c.Role == column.RolePost {
			group, section = GroupPost, s.PostSection
		}
		for _, p := range c.Pieces {
			out = append(out, Member{
				Group: group, Wall: c.Wall, Section: section,
				Start: Vec3{c.X, p.Bottom, c.Z},
				End:   Vec3{c.X, p.Top, c.Z},
			})
		}
	}
	for _, g := range l.GablePosts {
		out = append(out, Member{
			Group: GroupGablePost, Wall: g.Wall, Section: s.PostSection,
			Start: Vec3{g.X, g.Bottom, g.Z},
			End:   Vec3{g.X, g.Top, g.Z},
		})
	}
	for _, r := range l.Rails {
		for _, seg := range r.Segments {
			out = append(out, Member{
				Group: GroupRail, Wall: r.Wall, Section: s.RailSection,
				Start: onWall(d, r.Wall, seg.Start, r.Height),
				End:   onWall(d, r.Wall, seg.End, r.Height),
			})
		}
	}
	for _, p := range l.Purlins {
		for _, pt := range []roof.Point{p.Left, p.Right} {
			out = append(out, Member{
				Group: GroupPurlin, Section: s.PurlinSection,
				Start: Vec3{pt.X, pt.Y, -d.Length / 2},
				End:   Vec3{pt.X, pt.Y, d.Length / 2},
			})
		}
	}
	for _, t := range l.Trusses {
		peak := Vec3{t.Peak.X, t.Peak.Y, t.Z}
		out = append(out,
			Member{Group: GroupRafter, Section: s.ColumnSection, Start: Vec3{t.Left.X, t.Left.Y, t.Z}, End: peak},
			Member{Group: GroupRafter, Section: s.ColumnSection, Start: Vec3{t.Right.X, t.Right.Y, t.Z}, End: peak},
		)
	}
	for _, p := range l.Trims {
		out = append(out, Member{
			Group: GroupTrim, Wall: p.Wall, Section: s.PostSection,
			Start: onWall(d, p.Wall, p.From.U, p.From.Y),
			End:   onWall(d, p.Wall, p.To.U, p.To.Y),
		})
	}
	return out
}

// GroupSummary totals the members of one group.
type GroupSummary struct {
	Group       Group   `json:"group"`
	Count       int     `json:"count"`
	TotalLength float64 `json:"totalLength"`
}

// Summary lists every non-empty group in Groups order.
func (l Layout) Summary() []GroupSummary {
	totals := map[Group]*GroupSummary{}
	for _, m := range l.Members {
		g, ok := totals[m.Group]
		if !ok {
			g = &GroupSummary{Group: m.Group}
			totals[m.Group] = g
		}
		g.Count++
		g.TotalLength += m.Length()
	}
	var out []GroupSummary
	for _, g := range Groups {
		if t, ok := totals[g]; ok {
			out = append(out, *t)
		}
	}
	return out
}

// OnWall returns the members drawn in the elevation of w.
func (l Layout) OnWall(w opening.Wall) []Member {
	var out []Member
	for _, m := range l.Members {
		if m.Wall == w {
			out = append(out, m)
		}
	}
	return out
}
