package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ytget/smd/internal/platform"
	"github.com/ytget/smd/internal/quality"
)

var qualitiesCmd = &cobra.Command{
	Use:   "qualities [url]",
	Short: "List available quality presets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := quality.Names()

		if len(args) == 1 {
			h := platform.Resolve(args[0])
			if h == nil {
				return fmt.Errorf("unsupported URL: %s", args[0])
			}
			names = h.Qualities()
			fmt.Fprintf(cmd.OutOrStdout(), "Quality presets for %s:\n", h.Name())
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range names {
			p, ok := quality.Get(name)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(qualitiesCmd)
}
