package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/calc/report"
	"Barnframe/internal/calc/sheet"
)

func (c *CLI) layoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <design>",
		Short: "Print the frame layout of a design as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := c.build(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(frame.Result{Layout: l, Summary: l.Summary()})
		},
	}
}

func (c *CLI) summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <design>",
		Short: "Print member counts and lengths per group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, l, err := c.build(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, StyleTitle.Render(d.StructureName))
			fmt.Fprintf(w, "%s %s m  %s %s m  %s %s m\n",
				StyleDim.Render("width"), StyleNumber.Render(meters(l.Dimensions.Width)),
				StyleDim.Render("length"), StyleNumber.Render(meters(l.Dimensions.Length)),
				StyleDim.Render("peak"), StyleNumber.Render(meters(l.Derived.PeakHeight)))

			rows := make([][]string, 0, len(frame.Groups))
			for _, g := range l.Summary() {
				rows = append(rows, []string{report.GroupName(g.Group), strconv.Itoa(g.Count), meters(g.TotalLength)})
			}
			fmt.Fprintln(w, renderTable([]string{"Onderdeel", "Aantal", "Lengte (m)"}, rows))
			fmt.Fprintf(w, "%s %s\n", StyleDim.Render("items"), StyleValue.Render(strconv.Itoa(len(d.Items))))
			return nil
		},
	}
}

func (c *CLI) reportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report <design>",
		Short: "Write the PDF report of a design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))
			d, l, err := c.build(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = report.FileName(d)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := report.Render(f, d, l, timeNow()); err != nil {
				f.Close()
				return fmt.Errorf("render report: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			prog.done("Report written")
			printSuccess(cmd.OutOrStdout(), "Report written to %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>_rapport.pdf)")
	return cmd
}

func (c *CLI) exportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <design>",
		Short: "Write the member list of a design as an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, l, err := c.build(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = sheet.FileName(d)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := sheet.Export(f, d, l); err != nil {
				f.Close()
				return fmt.Errorf("export sheet: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Sheet written to %s", output)
			printDetail(cmd.OutOrStdout(), "%d members", len(l.Members))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>_staal.xlsx)")
	return cmd
}

func (c *CLI) importCommand() *cobra.Command {
	var appendItems bool
	cmd := &cobra.Command{
		Use:   "import <workbook> <design>",
		Short: "Replace the items of a design with the rows of a workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			res, err := sheet.ImportItems(f)
			if err != nil {
				return err
			}
			for _, row := range res.Skipped {
				logger.Warn("skipped row", "row", row)
			}

			d, err := loadOrNew(args[1])
			if err != nil {
				return err
			}
			if appendItems {
				d.Items = append(d.Items, res.Items...)
			} else {
				d.Items = res.Items
			}
			d = d.Normalize()
			if err := d.Validate(); err != nil {
				return err
			}
			if err := saveDesign(args[1], d); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Imported %d items into %s", res.Count, args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&appendItems, "append", false, "keep the existing items")
	return cmd
}

func meters(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
