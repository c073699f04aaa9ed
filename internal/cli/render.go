package cli

import (
	"context"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codeflow/pkg/pipeline"
	"github.com/matzehuels/codeflow/pkg/render/styles"
)

// renderFlags holds the flags shared by every command that writes an image.
type renderFlags struct {
	output   string
	format   string
	theme    string
	renderer string
	title    string
	scale    float64
	show     bool
	noCache  bool
	refresh  bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (default: derived from the input)")
	fl.StringVarP(&f.format, "format", "f", "", "output format: png, svg, pdf")
	fl.StringVarP(&f.theme, "theme", "t", "", "color scheme (shapes) or theme (graph)")
	fl.StringVar(&f.renderer, "renderer", "", "renderer: shapes, graph")
	fl.StringVar(&f.title, "title", "", "document title embedded in SVG and PDF output")
	fl.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG pixel density multiplier")
	fl.BoolVar(&f.show, "show", false, "open the result in the default viewer")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion("png", "svg", "pdf"))
	_ = cmd.RegisterFlagCompletionFunc("renderer", fixedCompletion(pipeline.RendererShapes, pipeline.RendererGraph))
	_ = cmd.RegisterFlagCompletionFunc("theme", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := slices.Concat(styles.SchemeNames, styles.ThemeNames)
		slices.Sort(names)
		return slices.Compact(names), cobra.ShellCompDirectiveNoFileComp
	})
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// options fills pipeline options from the flags, falling back to the
// configured defaults for anything left empty.
func (c *CLI) options(f *renderFlags) pipeline.Options {
	cfg := c.config()
	opts := pipeline.Options{
		Output:   f.output,
		Format:   f.format,
		Theme:    f.theme,
		Renderer: f.renderer,
		Title:    f.title,
		Scale:    f.scale,
		Refresh:  f.refresh,
		Logger:   c.Logger,
	}
	if opts.Format == "" {
		opts.Format = cfg.Format
	}
	if opts.Renderer == "" {
		opts.Renderer = cfg.Renderer
	}
	if opts.Theme == "" {
		opts.Theme = cfg.Theme
	}
	return opts
}

// runRender executes the pipeline and reports the written file.
func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, f *renderFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runner := c.newRunner(ctx, f.noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Drawing flowchart...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Drew %d nodes", result.Stats.NodeCount)

	out := cmd.OutOrStdout()
	printSuccess(out, "Flowchart saved")
	printFile(out, result.Output)
	printStats(out, chartStats{
		nodes:     result.Stats.NodeCount,
		edges:     result.Stats.EdgeCount,
		decisions: result.Stats.DecisionCount,
		complex:   result.Stats.Complex,
	}, result.CacheInfo.RenderHit)

	if f.show {
		if err := openFile(result.Output); err != nil {
			c.Logger.Warn("could not open output", "path", result.Output, "err", err)
		}
	}
	return nil
}

// convertCommand creates the convert command for Python files.
func (c *CLI) convertCommand() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "convert <file.py>",
		Short: "Draw a Python file as a flowchart",
		Long: `Convert parses a Python file and draws its control flow.

The output name defaults to the input with the extension replaced
(script.py -> script_flowchart.png).`,
		Example: `  codeflow convert script.py
  codeflow convert script.py -f svg -t pastel
  codeflow convert script.py --renderer graph -t dark -o graph.pdf -f pdf`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return []string{"py"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(&flags)
			opts.Input = args[0]
			return c.runRender(cmd, opts, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// drawCommand creates the draw command for flowchart definition files.
func (c *CLI) drawCommand() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "draw <chart.json|chart.toml>",
		Short: "Render a flowchart definition file",
		Long: `Draw renders a flowchart written as JSON or TOML.

Nodes without positions are laid out automatically; a definition in which
every node has a position is drawn exactly as written.`,
		Example: `  codeflow draw chart.json -f svg
  codeflow parse script.py --shapes -o chart.json && codeflow draw chart.json`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return []string{"json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(&flags)
			opts.Input = args[0]
			return c.runRender(cmd, opts, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}
