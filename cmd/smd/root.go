package main

import (
	"github.com/spf13/cobra"

	"github.com/ytget/smd/internal/config"
	"github.com/ytget/smd/internal/download"
	"github.com/ytget/smd/internal/errors"
	"github.com/ytget/smd/internal/files"
	"github.com/ytget/smd/internal/logging"
)

var (
	flagVerbose bool
	flagJSONLog bool
	flagConfig  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "smd",
	Short: "Social media downloader for YouTube, Facebook and Instagram",
	Long: `smd downloads videos from YouTube, Facebook and Instagram.

It detects the platform from the URL, picks a sensible quality preset and
drives yt-dlp under the hood. Besides the CLI it ships an HTTP API server
for browser clients.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(flagVerbose, flagJSONLog, nil)

		var err error
		if flagConfig != "" {
			cfg, err = config.Load(flagConfig)
		} else {
			cfg, err = config.LoadDefault()
		}
		if err != nil {
			return errors.ConfigError("failed to load configuration", err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLog, "json-log", false, "emit logs as JSON")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// newDownloadService builds the download service from the loaded config.
// An empty output dir falls back to the user's Downloads directory.
func newDownloadService() (*download.Service, error) {
	dir := cfg.Download.OutputDir
	if dir == "" {
		var err error
		dir, err = files.HomeDownloadsDir()
		if err != nil {
			return nil, err
		}
	}
	if err := files.EnsureDir(dir); err != nil {
		return nil, err
	}
	svc := download.NewService(download.NewYTDLPEngine(), dir, cfg.Download.MaxConcurrent)
	return svc, nil
}
