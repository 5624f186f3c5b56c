package commands

import (
	"github.com/spf13/cobra"

	"github.com/conbuild/conbuild/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var opts app.BuildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the console, reusing cached output when possible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Build from scratch, ignoring any cached output")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Override the configured output directory")

	return cmd
}
