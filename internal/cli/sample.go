package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/codeflow/pkg/samples"
)

// sampleCommand creates the sample command for the built-in charts.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		flags renderFlags
		list  bool
	)
	cmd := &cobra.Command{
		Use:   "sample [name]",
		Short: "Draw a built-in flowchart",
		Long: `Sample draws one of the hand-authored flowcharts shipped with codeflow.
Without a name it draws "` + samples.Default + `".`,
		Example: `  codeflow sample --list
  codeflow sample bubble-sort -f svg -t pastel`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return samples.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				out := cmd.OutOrStdout()
				for _, s := range samples.All() {
					printKeyValue(out, s.Name, s.Description)
				}
				return nil
			}

			opts := c.options(&flags)
			opts.Sample = samples.Default
			if len(args) == 1 {
				opts.Sample = args[0]
			}
			return c.runRender(cmd, opts, &flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&list, "list", false, "list the available samples")
	return cmd
}
