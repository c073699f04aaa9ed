package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/pipeline"
)

// parseCommand creates the parse command, which writes the construct graph
// of a Python file as JSON.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output  string
		shapes  bool
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "parse <file.py>",
		Short: "Write the construct graph of a Python file as JSON",
		Long: `Parse reads a Python file and writes the graph of its constructs:
one node per module, function, class, statement and branch body, one edge
per containment or control-flow step.

With --shapes the graph is mapped to flowchart shapes and placed, so the
output can be edited and drawn again with "codeflow draw".`,
		Example: `  codeflow parse script.py
  codeflow parse script.py --shapes -o chart.json`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return []string{"py"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			src, err := pipeline.ReadSource(c.Fs, args[0])
			if err != nil {
				return err
			}
			prog := newProgress(c.Logger)
			fc, hit, err := runner.ParseWithCacheInfo(ctx, args[0], src, false)
			if err != nil {
				return err
			}
			prog.done("Parsed %s", args[0])
			if shapes {
				fc = pipeline.Prepare(fc, pipeline.Options{Renderer: pipeline.RendererShapes})
			}

			if output == "" {
				return flowchart.WriteJSON(cmd.OutOrStdout(), fc)
			}
			var buf bytes.Buffer
			if err := flowchart.WriteJSON(&buf, fc); err != nil {
				return err
			}
			if err := pipeline.WriteFile(c.Fs, output, buf.Bytes()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Graph saved")
			printFile(out, output)
			printStats(out, chartStats{
				nodes:     fc.NodeCount(),
				edges:     fc.EdgeCount(),
				decisions: fc.DecisionCount(),
				complex:   fc.IsComplex(),
			}, hit)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&shapes, "shapes", false, "map constructs to placed flowchart shapes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
