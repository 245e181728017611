package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/config"
	"Barnframe/internal/design"
	"Barnframe/internal/repo"
)

const appName = "framectl"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose      bool
	storePath    string
	settingsPath string
	settings     frame.Settings
}

func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), settings: frame.DefaultSettings()}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "framectl lays out the steel frame of a barn design",
		Long:          `framectl reads a barn design with its doors and windows, places columns, wall rails and roof purlins around the openings, and writes the layout as text, a PDF report or an Excel member list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.Logger.SetLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.configure()
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.storePath, "store", "", "SQLite design store (default from FRAMECTL_STORE)")
	root.PersistentFlags().StringVar(&c.settingsPath, "settings", "", "layout settings file (.toml, .yaml or .json)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.saveCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.deleteCommand())

	return root
}

// configure resolves the store path and the layout settings. Flags win over
// the environment.
func (c *CLI) configure() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.storePath == "" {
		c.storePath = cfg.StorePath
	}
	c.settings = cfg.Frame
	if c.settingsPath != "" {
		s, err := config.LoadSettings(c.settingsPath)
		if err != nil {
			return err
		}
		c.settings = s
	}
	c.Logger.Debug("configured", "store", c.storePath, "settings", c.settingsPath)
	return nil
}

// build loads a design file and lays out its frame.
func (c *CLI) build(path string) (design.Design, frame.Layout, error) {
	d, err := design.Load(path)
	if err != nil {
		return design.Design{}, frame.Layout{}, fmt.Errorf("load design: %w", err)
	}
	l, err := frame.Build(d.Dimensions, d.Openings(), c.settings)
	if err != nil {
		return design.Design{}, frame.Layout{}, fmt.Errorf("layout: %w", err)
	}
	c.Logger.Debug("layout built", "design", d.StructureName, "members", len(l.Members))
	return d, l, nil
}

func (c *CLI) openStore(ctx context.Context) (*repo.SQLDesignRepository, func() error, error) {
	db, err := repo.OpenSQLite(c.storePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	store := repo.NewSQLiteDesignDB(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db.Close, nil
}
