package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"Barnframe/internal/design"
	"Barnframe/internal/repo"
)

// localOwner owns every design in the local store.
const localOwner = 0

var timeNow = time.Now

func loadOrNew(path string) (design.Design, error) {
	d, err := design.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return design.New(), nil
	}
	return d, err
}

func saveDesign(path string, d design.Design) error {
	if err := design.Save(path, d); err != nil {
		return fmt.Errorf("save design: %w", err)
	}
	return nil
}

func (c *CLI) saveCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "save <design>",
		Short: "Store a design file in the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := design.Load(args[0])
			if err != nil {
				return err
			}
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			saved, err := store.SaveDesign(cmd.Context(), localOwner, id, d)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Saved %s", saved.Name)
			printDetail(cmd.OutOrStdout(), "id %s", saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "overwrite the stored design with this id")
	return cmd
}

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored designs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			designs, err := store.ListDesigns(cmd.Context(), localOwner)
			if err != nil {
				return err
			}
			if len(designs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), StyleDim.Render("no stored designs"))
				return nil
			}
			rows := make([][]string, 0, len(designs))
			for _, d := range designs {
				rows = append(rows, []string{d.ID, d.Name, fmt.Sprint(len(d.Design.Items)), d.UpdatedAt.Local().Format(time.DateTime)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Naam", "Items", "Bijgewerkt"}, rows))
			return nil
		},
	}
}

func (c *CLI) loadCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Write a stored design to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			saved, err := store.GetDesign(cmd.Context(), localOwner, args[0])
			if errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("design %s not found", args[0])
			}
			if err != nil {
				return err
			}
			if output == "" {
				output = saved.Design.FileName(design.JSON.Ext())
			}
			if err := saveDesign(output, saved.Design); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Design written to %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>_backup.json)")
	return cmd
}

func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a stored design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.DeleteDesign(cmd.Context(), localOwner, args[0]); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return fmt.Errorf("design %s not found", args[0])
				}
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Deleted %s", args[0])
			return nil
		},
	}
}
