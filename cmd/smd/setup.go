package main

import (
	"github.com/spf13/cobra"

	"github.com/ytget/smd/internal/errors"
	"github.com/ytget/smd/internal/provision"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision the runtime environment",
	Long: `setup prepares everything needed to run smd: it creates the environment
directory, installs or upgrades the yt-dlp engine, links this checkout as the
installed package and probes for optional media tools (ffmpeg, ffprobe).

Re-running setup is safe: an existing environment directory is left as is.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := provision.New(cfg.EnvDir)
		p.Out = cmd.OutOrStdout()
		if err := p.Run(cmd.Context()); err != nil {
			return errors.SetupError(err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
