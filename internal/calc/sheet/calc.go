package sheet

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/calc/opening"
	"Barnframe/internal/design"
)

const (
	SummarySheet = "Summary"
	MembersSheet = "Members"
	ItemsSheet   = "Items"
)

// ItemHeader is the column layout of the items sheet, shared by export and import.
var ItemHeader = []any{"name", "type", "wall", "position_m", "width_mm", "height_mm", "elevation_mm"}

var ErrEmptySheet = errors.New("empty sheet")

// Export writes a workbook with the member summary, every member and the
// design items.
func Export(out io.Writer, d design.Design, l frame.Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	for _, name := range []string{MembersSheet, ItemsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	rows := [][]any{
		{"structure", d.StructureName},
		{"width_m", d.Dimensions.Width},
		{"length_m", d.Dimensions.Length},
		{"gutter_height_m", d.Dimensions.GutterHeight},
		{"roof_angle_deg", d.Dimensions.RoofAngle},
		{"peak_height_m", round(l.Derived.PeakHeight)},
		{},
		{"group", "count", "total_length_m"},
	}
	for _, g := range l.Summary() {
		rows = append(rows, []any{string(g.Group), g.Count, round(g.TotalLength)})
	}
	if err := writeRows(f, SummarySheet, rows); err != nil {
		return err
	}

	rows = [][]any{{"group", "wall", "x1", "y1", "z1", "x2", "y2", "z2", "length_m", "section_mm"}}
	for _, m := range l.Members {
		rows = append(rows, []any{
			string(m.Group), string(m.Wall),
			round(m.Start.X), round(m.Start.Y), round(m.Start.Z),
			round(m.End.X), round(m.End.Y), round(m.End.Z),
			round(m.Length()),
			fmt.Sprintf("%.0fx%.0f", m.Section.Width*1000, m.Section.Depth*1000),
		})
	}
	if err := writeRows(f, MembersSheet, rows); err != nil {
		return err
	}

	rows = [][]any{ItemHeader}
	for _, it := range d.Items {
		rows = append(rows, []any{it.Name, string(it.Type), string(it.Wall), it.Position, it.Width, it.Height, it.Elevation})
	}
	if err := writeRows(f, ItemsSheet, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(out)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

type ImportResult struct {
	Count   int           `json:"count"`
	Items   []design.Item `json:"items"`
	Skipped []int         `json:"skipped,omitempty"`
}

// ImportItems reads design items from the items sheet, or the first sheet
// when there is none. Rows that do not parse are reported by row number.
func ImportItems(r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if slices.Contains(f.GetSheetList(), ItemsSheet) {
		sheet = ItemsSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) < 2 {
		return ImportResult{}, ErrEmptySheet
	}

	var res ImportResult
	for i := 1; i < len(rows); i++ {
		it, err := parseItemRow(rows[i])
		if err != nil {
			res.Skipped = append(res.Skipped, i+1)
			continue
		}
		res.Items = append(res.Items, it)
	}
	res.Count = len(res.Items)
	return res, nil
}

func parseItemRow(row []string) (design.Item, error) {
	// expected: name, type, wall, position_m, width_mm, height_mm, elevation_mm(optional)
	if len(row) < 6 {
		return design.Item{}, fmt.Errorf("bad row")
	}
	it := design.Item{
		Name: strings.TrimSpace(row[0]),
		Type: design.ItemType(strings.ToLower(strings.TrimSpace(row[1]))),
		Wall: opening.Wall(strings.ToLower(strings.TrimSpace(row[2]))),
	}
	if _, ok := it.Type.Kind(); !ok {
		return design.Item{}, fmt.Errorf("unknown type %q", row[1])
	}
	if !it.Wall.Valid() {
		return design.Item{}, fmt.Errorf("unknown wall %q", row[2])
	}
	var err error
	if it.Position, err = toFloat(row[3]); err != nil {
		return design.Item{}, err
	}
	if it.Width, err = toFloat(row[4]); err != nil {
		return design.Item{}, err
	}
	if it.Height, err = toFloat(row[5]); err != nil {
		return design.Item{}, err
	}
	if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
		if it.Elevation, err = toFloat(row[6]); err != nil {
			return design.Item{}, err
		}
	}
	return it, nil
}

// toFloat accepts a decimal comma.
func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
