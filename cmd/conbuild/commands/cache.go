package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache",
		Short: "Show the cache key and entry status for the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.app.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !status.Enabled {
				fmt.Fprintln(out, "cache: disabled")
				return nil
			}
			fmt.Fprintln(out, "cache: enabled")
			fmt.Fprintln(out, "root:  "+status.Root)
			fmt.Fprintln(out, "key:   "+status.Key)
			if status.Exists {
				fmt.Fprintln(out, "entry: present")
			} else {
				fmt.Fprintln(out, "entry: absent")
			}
			return nil
		},
	}
}
