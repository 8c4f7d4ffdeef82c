package cli

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vehiclelookup/internal/config"
	"github.com/matzehuels/vehiclelookup/pkg/buildinfo"
	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
	"github.com/matzehuels/vehiclelookup/pkg/selection"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	profile    string
	verbose    bool

	cfg *config.Config

	// lookup overrides the HTTP client built from the config.
	lookup Lookup
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vehiclelookup",
		Short:         "Look up vehicle years, makes and models",
		Long:          `vehiclelookup queries a remote vehicle catalogue for model years, the makes sold in a year and the models of a make, and remembers the vehicle you picked.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default ~/.config/vehiclelookup/config.toml)")
	flags.StringVar(&c.profile, "profile", "", "selection profile (default from config)")

	root.AddCommand(c.yearsCommand())
	root.AddCommand(c.makesCommand())
	root.AddCommand(c.modelsCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.selectionCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level, _ := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	c.Logger.Debug("Configuration loaded", "base_url", cfg.API.BaseURL, "store", cfg.Store.Backend)
	return nil
}

// =============================================================================
// Shared Helpers
// =============================================================================

// settings returns the loaded configuration, or defaults before setup ran.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

func (c *CLI) newLookup() Lookup {
	if c.lookup != nil {
		return c.lookup
	}
	cfg := c.settings()
	return vehicles.NewClient(cfg.API.BaseURL, cfg.API.Timeout, c.Logger)
}

func (c *CLI) openStore(ctx context.Context) (selection.Store, error) {
	return selection.Open(ctx, c.settings().SelectionOptions())
}

// profileName returns --profile, falling back to the configured profile.
func (c *CLI) profileName() string {
	if c.profile != "" {
		return c.profile
	}
	if p := c.settings().Store.Profile; p != "" {
		return p
	}
	return selection.DefaultProfile
}

// presentError converts err into the user-facing APIError form.
// Cancellation passes through so main can exit quietly.
func presentError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return vehicles.ToAPIError(err)
}
