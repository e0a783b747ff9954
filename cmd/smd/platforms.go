package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/smd/internal/platform"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, h := range platform.All() {
			fmt.Fprintf(out, "%s\n", h.Name())
			fmt.Fprintf(out, "  domains:             %s\n", strings.Join(h.Domains(), ", "))
			fmt.Fprintf(out, "  recommended quality: %s\n", h.RecommendedQuality())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}
