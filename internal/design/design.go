// Package design holds a saved barn configuration in the units the configurator
// shows: item sizes in millimetres, positions in metres.
package design

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"Barnframe/internal/calc/geometry"
	"Barnframe/internal/calc/opening"
)

const (
	DefaultName           = "Mijn Structuur"
	DefaultPanelThickness = "60mm"

	// OpeningClear sizes door openings to the steel.
	OpeningClear = "Dagmaten"
	// OpeningClearInsulated adds the wall panels around each door.
	OpeningClearInsulated = "Dagmaten + isolatie"
)

// PanelThicknesses are the wall panel sizes on offer, in millimetres.
var PanelThicknesses = []int{40, 60, 80, 100, 120, 150}

type ItemType string

const (
	SectionalDoor ItemType = "sectionaaldeur"
	WalkDoor      ItemType = "loopdeur"
	Window        ItemType = "raam"
)

func (t ItemType) Kind() (opening.Kind, bool) {
	switch t {
	case SectionalDoor:
		return opening.SectionalDoor, true
	case WalkDoor:
		return opening.WalkDoor, true
	case Window:
		return opening.Window, true
	}
	return "", false
}

// Label is the display name of an item type.
func (t ItemType) Label() string {
	switch t {
	case WalkDoor:
		return "Loopdeur"
	case Window:
		return "Raam"
	default:
		return "Sectionaaldeur"
	}
}

// TypeOf maps an opening kind back to its item type.
func TypeOf(k opening.Kind) ItemType {
	switch k {
	case opening.WalkDoor:
		return WalkDoor
	case opening.Window:
		return Window
	default:
		return SectionalDoor
	}
}

type Item struct {
	ID        string       `json:"id" yaml:"id" toml:"id"`
	Name      string       `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type      ItemType     `json:"type" yaml:"type" toml:"type"`
	Wall      opening.Wall `json:"wall" yaml:"wall" toml:"wall"`
	Position  float64      `json:"position" yaml:"position" toml:"position"`
	Width     float64      `json:"width" yaml:"width" toml:"width"`
	Height    float64      `json:"height" yaml:"height" toml:"height"`
	Elevation float64      `json:"elevation" yaml:"elevation" toml:"elevation"`
}

type Orientation struct {
	ShowFront bool `json:"showFront" yaml:"showFront" toml:"showFront"`
	ShowBack  bool `json:"showBack" yaml:"showBack" toml:"showBack"`
	ShowLeft  bool `json:"showLeft" yaml:"showLeft" toml:"showLeft"`
	ShowRight bool `json:"showRight" yaml:"showRight" toml:"showRight"`
}

// Walls lists the walls switched on, in layout order.
func (o Orientation) Walls() []opening.Wall {
	var out []opening.Wall
	for _, w := range opening.Walls {
		if o.Shows(w) {
			out = append(out, w)
		}
	}
	return out
}

func (o Orientation) Shows(w opening.Wall) bool {
	switch w {
	case opening.Front:
		return o.ShowFront
	case opening.Back:
		return o.ShowBack
	case opening.Left:
		return o.ShowLeft
	case opening.Right:
		return o.ShowRight
	}
	return false
}

type Design struct {
	StructureName   string              `json:"structureName" yaml:"structureName" toml:"structureName"`
	Dimensions      geometry.Dimensions `json:"dimensions" yaml:"dimensions" toml:"dimensions"`
	PanelThickness  string              `json:"panelThickness" yaml:"panelThickness" toml:"panelThickness"`
	DoorOpeningType string              `json:"doorOpeningType" yaml:"doorOpeningType" toml:"doorOpeningType"`
	Orientation     Orientation         `json:"orientation" yaml:"orientation" toml:"orientation"`
	Items           []Item              `json:"items" yaml:"items" toml:"items"`
}

// New returns the configuration a fresh session starts from.
func New() Design {
	return Design{
		StructureName:   DefaultName,
		Dimensions:      geometry.Dimensions{Width: 8, Length: 12, GutterHeight: 3, RoofAngle: 25},
		PanelThickness:  DefaultPanelThickness,
		DoorOpeningType: OpeningClear,
		Orientation:     Orientation{ShowFront: true},
		Items:           []Item{},
	}
}

// Normalize fills missing fields the way an imported backup is completed:
// default name, panels and opening type, item IDs and numbered item names.
func (d Design) Normalize() Design {
	if strings.TrimSpace(d.StructureName) == "" {
		d.StructureName = DefaultName
	}
	if d.PanelThickness == "" {
		d.PanelThickness = DefaultPanelThickness
	}
	if d.DoorOpeningType == "" {
		d.DoorOpeningType = OpeningClear
	}
	counts := map[ItemType]int{}
	items := make([]Item, len(d.Items))
	for i, it := range d.Items {
		counts[it.Type]++
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if it.Name == "" {
			it.Name = ItemName(it.Type, counts[it.Type])
		}
		items[i] = it
	}
	d.Items = items
	return d
}

// ItemName numbers items of one type: "Raam", "Raam 2", "Raam 3".
func ItemName(t ItemType, n int) string {
	if n <= 1 {
		return t.Label()
	}
	return fmt.Sprintf("%s %d", t.Label(), n)
}

func (d Design) Validate() error {
	if err := d.Dimensions.Validate(); err != nil {
		return err
	}
	if _, err := d.PanelThicknessMM(); err != nil {
		return err
	}
	if d.DoorOpeningType != OpeningClear && d.DoorOpeningType != OpeningClearInsulated {
		return fmt.Errorf("%w: door opening type %q", ErrInvalidDesign, d.DoorOpeningType)
	}
	for _, it := range d.Items {
		if _, ok := it.Type.Kind(); !ok {
			return fmt.Errorf("%w: item %q has unknown type %q", ErrInvalidDesign, it.Name, it.Type)
		}
		if !it.Wall.Valid() {
			return fmt.Errorf("%w: item %q has unknown wall %q", ErrInvalidDesign, it.Name, it.Wall)
		}
	}
	return nil
}

// PanelThicknessMM parses values like "60mm".
func (d Design) PanelThicknessMM() (int, error) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(d.PanelThickness), "mm"))
	mm, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: panel thickness %q", ErrInvalidDesign, d.PanelThickness)
	}
	for _, p := range PanelThicknesses {
		if p == mm {
			return mm, nil
		}
	}
	return 0, fmt.Errorf("%w: panel thickness %dmm not offered", ErrInvalidDesign, mm)
}

// Openings converts the items to core openings in metres.
func (d Design) Openings() []opening.Opening {
	out := make([]opening.Opening, 0, len(d.Items))
	for _, it := range d.Items {
		kind, ok := it.Type.Kind()
		if !ok {
			continue
		}
		out = append(out, opening.Opening{
			ID:        it.ID,
			Kind:      kind,
			Wall:      it.Wall,
			Position:  it.Position,
			Width:     geometry.Meters(it.Width),
			Height:    geometry.Meters(it.Height),
			Elevation: geometry.Meters(it.Elevation),
		})
	}
	return out
}

// DisplaySize is the size shown for an item in millimetres. With insulated
// door openings a door grows by one panel on each side and one on top.
func (d Design) DisplaySize(it Item) (width, height float64) {
	width, height = it.Width, it.Height
	if d.DoorOpeningType != OpeningClearInsulated || it.Type == Window {
		return width, height
	}
	panel, err := d.PanelThicknessMM()
	if err != nil {
		return width, height
	}
	return width + 2*float64(panel), height + float64(panel)
}

// OnWall returns the items placed on w.
func (d Design) OnWall(w opening.Wall) []Item {
	var out []Item
	for _, it := range d.Items {
		if it.Wall == w {
			out = append(out, it)
		}
	}
	return out
}

// FileName is the backup file name: whitespace runs become underscores.
func (d Design) FileName(ext string) string {
	fields := strings.FieldsFunc(d.StructureName, unicode.IsSpace)
	if len(fields) == 0 {
		fields = []string{"structure"}
	}
	return strings.Join(fields, "_") + "_backup" + ext
}
