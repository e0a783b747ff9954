package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/smd/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.FullString())
		if flagVerbose {
			for k, v := range version.Info() {
				fmt.Fprintf(out, "  %s: %s\n", k, v)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
