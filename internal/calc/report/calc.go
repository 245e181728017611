package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/calc/opening"
	"Barnframe/internal/design"
)

var wallNames = map[opening.Wall]string{
	opening.Front: "Voorkant",
	opening.Back:  "Achterkant",
	opening.Left:  "Linkerkant",
	opening.Right: "Rechterkant",
}

var groupNames = map[frame.Group]string{
	frame.GroupColumn:    "Kolommen",
	frame.GroupPost:      "Wandstijlen",
	frame.GroupGablePost: "Gevelstijlen",
	frame.GroupRail:      "Wandregels",
	frame.GroupPurlin:    "Dakgordingen",
	frame.GroupRafter:    "Spanten",
	frame.GroupTrim:      "Omranding",
}

// WallName is the Dutch label used on drawings.
func WallName(w opening.Wall) string { return wallNames[w] }

func GroupName(g frame.Group) string {
	if n, ok := groupNames[g]; ok {
		return n
	}
	return string(g)
}

type writer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	p   *message.Printer
}

func (w *writer) heading(s string) {
	w.pdf.SetFont("Helvetica", "B", 22)
	w.pdf.CellFormat(0, 14, w.tr(s), "", 1, "C", false, 0, "")
	w.pdf.Ln(4)
}

func (w *writer) line(size float64, s string) {
	w.pdf.SetFont("Helvetica", "", size)
	w.pdf.CellFormat(0, 8, w.tr(s), "", 1, "L", false, 0, "")
}

func (w *writer) mm(m float64) string {
	return w.p.Sprintf("%dmm", int(math.Round(m*1000)))
}

// Render writes the PDF report of d and its derived frame l.
func Render(out io.Writer, d design.Design, l frame.Layout, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.StructureName, true)
	pdf.SetCreationDate(now)
	pdf.SetAutoPageBreak(true, 20)
	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), p: message.NewPrinter(language.Dutch)}

	w.cover(d, l, now)
	w.items(d)
	w.walls(d)
	w.details(d)
	w.members(l)
	for _, wall := range visible(d) {
		w.elevation(d, l, wall)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(out)
}

func visible(d design.Design) []opening.Wall {
	if walls := d.Orientation.Walls(); len(walls) > 0 {
		return walls
	}
	return opening.Walls
}

func (w *writer) cover(d design.Design, l frame.Layout, now time.Time) {
	w.pdf.AddPage()
	w.pdf.SetY(30)
	w.heading(d.StructureName)
	w.pdf.SetFont("Helvetica", "", 12)
	w.pdf.CellFormat(0, 8, "Gegenereerd op: "+now.Format("02-01-2006"), "", 1, "C", false, 0, "")
	w.pdf.Ln(10)

	w.pdf.SetFont("Helvetica", "B", 16)
	w.pdf.CellFormat(0, 10, "Afmetingen", "", 1, "L", false, 0, "")
	dim := d.Dimensions
	w.line(12, "Breedte: "+w.mm(dim.Width))
	w.line(12, "Lengte: "+w.mm(dim.Length))
	w.line(12, "Goothoogte: "+w.mm(dim.GutterHeight))
	w.line(12, w.p.Sprintf("Dakhelling: %v°", dim.RoofAngle))
	w.line(12, "Nokhoogte: "+w.mm(l.Derived.PeakHeight))
	w.line(12, "Wandpanelen: "+d.PanelThickness)
	w.line(12, "Type deuropeningen: "+d.DoorOpeningType)
	w.line(12, w.p.Sprintf("Traveeën: %d x %s (lengte), %d x %s (breedte)",
		l.Derived.LengthBays, w.mm(l.Derived.LengthBay), l.Derived.WidthBays, w.mm(l.Derived.WidthBay)))
}

func (w *writer) items(d design.Design) {
	w.pdf.AddPage()
	w.heading("Overzicht items")
	counts := map[design.ItemType]int{}
	for _, it := range d.Items {
		counts[it.Type]++
	}
	w.line(12, w.p.Sprintf("Aantal sectionaaldeuren: %d", counts[design.SectionalDoor]))
	w.line(12, w.p.Sprintf("Aantal loopdeuren: %d", counts[design.WalkDoor]))
	w.line(12, w.p.Sprintf("Aantal ramen: %d", counts[design.Window]))
	w.line(12, w.p.Sprintf("Totaal aantal items: %d", len(d.Items)))
}

func (w *writer) walls(d design.Design) {
	w.pdf.AddPage()
	w.heading("Zijden overzicht")
	for _, wall := range opening.Walls {
		items := d.OnWall(wall)
		w.pdf.SetFont("Helvetica", "B", 14)
		w.pdf.CellFormat(0, 8, WallName(wall)+":", "", 1, "L", false, 0, "")
		if len(items) == 0 {
			w.line(12, "    Geen items op deze zijde.")
		} else {
			w.line(12, w.p.Sprintf("    Aantal items: %d", len(items)))
			for _, it := range items {
				width, height := d.DisplaySize(it)
				w.line(12, w.p.Sprintf("    - %s: %v×%vmm", it.Type.Label(), width, height))
			}
		}
		w.pdf.Ln(4)
	}
}

func (w *writer) details(d design.Design) {
	w.pdf.AddPage()
	w.heading("Item details")
	if len(d.Items) == 0 {
		w.line(12, "Geen items toegevoegd aan de structuur.")
		return
	}
	for _, it := range d.Items {
		w.pdf.SetFont("Helvetica", "B", 14)
		w.pdf.CellFormat(0, 8, w.tr(fmt.Sprintf("%s (%s)", it.Name, WallName(it.Wall))), "", 1, "L", false, 0, "")
		width, height := d.DisplaySize(it)
		w.line(12, w.p.Sprintf("Afmetingen: %vmm × %vmm", width, height))
		w.line(12, "Positie vanaf links: "+w.mm(it.Position))
		if it.Type == design.Window {
			w.line(12, w.p.Sprintf("Hoogte vanaf vloer: %vmm", it.Elevation))
		}
		w.pdf.Ln(4)
	}
}

func (w *writer) members(l frame.Layout) {
	w.pdf.AddPage()
	w.heading("Staalstructuur")
	w.pdf.SetFont("Helvetica", "B", 12)
	w.pdf.CellFormat(80, 8, "Onderdeel", "B", 0, "L", false, 0, "")
	w.pdf.CellFormat(40, 8, "Aantal", "B", 0, "R", false, 0, "")
	w.pdf.CellFormat(50, 8, "Totale lengte", "B", 1, "R", false, 0, "")
	w.pdf.SetFont("Helvetica", "", 12)
	for _, g := range l.Summary() {
		w.pdf.CellFormat(80, 8, w.tr(GroupName(g.Group)), "", 0, "L", false, 0, "")
		w.pdf.CellFormat(40, 8, w.p.Sprintf("%d", g.Count), "", 0, "R", false, 0, "")
		w.pdf.CellFormat(50, 8, w.p.Sprintf("%.2f m", g.TotalLength), "", 1, "R", false, 0, "")
	}
}

// elevation draws one wall as seen from outside, scaled into the page.
func (w *writer) elevation(d design.Design, l frame.Layout, wall opening.Wall) {
	const (
		left   = 20.0
		top    = 50.0
		maxW   = 170.0
		maxH   = 180.0
		member = 0.4
	)
	w.pdf.AddPage()
	w.heading("Aanzicht " + WallName(wall))

	dim := d.Dimensions
	span := wall.Span(dim)
	height := dim.GutterHeight
	if wall.Gable() {
		height = l.Derived.PeakHeight
	}
	scale := math.Min(maxW/span, maxH/height)
	base := top + height*scale
	x := func(u float64) float64 { return left + (u+span/2)*scale }
	y := func(h float64) float64 { return base - h*scale }

	w.pdf.SetDrawColor(120, 120, 120)
	w.pdf.SetLineWidth(0.2)
	outline := []gofpdf.PointType{
		{X: x(-span / 2), Y: y(0)},
		{X: x(span / 2), Y: y(0)},
		{X: x(span / 2), Y: y(dim.GutterHeight)},
	}
	if wall.Gable() {
		outline = append(outline, gofpdf.PointType{X: x(0), Y: y(l.Derived.PeakHeight)})
	}
	outline = append(outline, gofpdf.PointType{X: x(-span / 2), Y: y(dim.GutterHeight)})
	w.pdf.Polygon(outline, "D")

	w.pdf.SetDrawColor(40, 40, 40)
	w.pdf.SetLineWidth(member)
	for _, m := range l.OnWall(wall) {
		u0, u1 := m.Start.Z, m.End.Z
		if wall.Gable() {
			u0, u1 = m.Start.X, m.End.X
		}
		w.pdf.Line(x(u0), y(m.Start.Y), x(u1), y(m.End.Y))
	}

	w.pdf.SetDrawColor(200, 60, 40)
	w.pdf.SetLineWidth(0.3)
	w.pdf.SetFont("Helvetica", "", 8)
	for _, iv := range opening.OnWall(l.Openings, wall) {
		w.pdf.Rect(x(iv.Start), y(iv.YMax), (iv.End-iv.Start)*scale, (iv.YMax-iv.YMin)*scale, "D")
		w.pdf.Text(x(iv.Start)+1, y(iv.YMax)-1, w.tr(w.itemLabel(d, iv)))
	}

	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.Text(x(-span/2), base+8, w.tr(w.p.Sprintf("%s: %s, goothoogte %s", WallName(wall), w.mm(span), w.mm(dim.GutterHeight))))
}

func (w *writer) itemLabel(d design.Design, iv opening.Interval) string {
	for _, it := range d.Items {
		if it.ID == iv.ID {
			width, height := d.DisplaySize(it)
			return w.p.Sprintf("%s %v×%v", it.Name, width, height)
		}
	}
	return string(iv.Kind)
}
