// Package cli implements the codeflow command-line interface.
//
// # Commands
//
//   - convert: draw a Python file as a flowchart
//   - parse: dump the construct graph of a Python file as JSON
//   - draw: render a JSON or TOML flowchart definition
//   - sample: draw one of the built-in charts
//   - serve: run the HTTP API
//   - cache: inspect or clear the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every pipeline stage. CODEFLOW_LOG_LEVEL sets the level otherwise.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codeflow/pkg/buildinfo"
	"github.com/matzehuels/codeflow/pkg/cache"
	"github.com/matzehuels/codeflow/pkg/config"
	"github.com/matzehuels/codeflow/pkg/observability"
	"github.com/matzehuels/codeflow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "codeflow"

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
	// Fs is where inputs are read and outputs written.
	Fs afero.Fs
	// Config supplies flag defaults. It is loaded from the environment
	// before the first command runs unless already set.
	Config *config.Config

	verbose bool
}

// New creates a new CLI instance on the OS filesystem.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Fs:     afero.NewOsFs(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Codeflow turns Python source into flowcharts",
		Long: `Codeflow parses Python source and draws its control flow as a flowchart:
start and end ellipses, process rectangles, decision diamonds and
input/output parallelograms, or as a Graphviz graph of its constructs.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and applies the log level.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.Config == nil {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		c.Config = cfg
	}

	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.NewLogHooks(c.Logger).Register()
		return nil
	}
	level, err := c.Config.Level()
	if err != nil {
		return err
	}
	c.SetLogLevel(level)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A cache that cannot be
// opened is reported and replaced by no cache at all.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	cfg := *c.config()
	cfg.NoCache = cfg.NoCache || noCache

	store, err := cfg.OpenCache(ctx, c.Fs)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		store = cache.NewNullCache()
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return pipeline.NewRunner(c.Fs, store, keyer, c.Logger)
}

func (c *CLI) config() *config.Config {
	if c.Config == nil {
		c.Config = &config.Config{
			Format:   pipeline.DefaultFormat,
			Renderer: pipeline.DefaultRenderer,
			Addr:     ":8080",
			LogLevel: "info",
		}
	}
	return c.Config
}
