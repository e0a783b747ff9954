package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/smd/internal/errors"
	"github.com/ytget/smd/internal/model"
	"github.com/ytget/smd/internal/urldetect"
)

var flagInfoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <url>",
	Short: "Show video metadata without downloading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !urldetect.IsSupported(args[0]) {
			return errors.UnsupportedURL(args[0])
		}

		svc, err := newDownloadService()
		if err != nil {
			return err
		}

		info, err := svc.Info(cmd.Context(), args[0])
		if err != nil {
			return errors.EngineError("failed to fetch video info", err)
		}

		if flagInfoJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		printInfo(cmd, info)
		return nil
	},
}

func printInfo(cmd *cobra.Command, info *model.VideoInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Title:    %s\n", info.Title)
	fmt.Fprintf(out, "Platform: %s\n", info.Platform)
	if info.Uploader != "" {
		fmt.Fprintf(out, "Uploader: %s\n", info.Uploader)
	}
	if d := info.DurationFormatted(); d != "" {
		fmt.Fprintf(out, "Duration: %s\n", d)
	}
	if info.ViewCount > 0 {
		fmt.Fprintf(out, "Views:    %d\n", info.ViewCount)
	}
	if info.UploadDate != "" {
		fmt.Fprintf(out, "Uploaded: %s\n", info.UploadDate)
	}
	if len(info.AvailableQualities) > 0 {
		fmt.Fprintf(out, "Qualities: %s\n", strings.Join(info.AvailableQualities, ", "))
	}
	if len(info.Formats) > 0 {
		fmt.Fprintf(out, "Formats:  %d available\n", len(info.Formats))
	}
}

func init() {
	infoCmd.Flags().BoolVar(&flagInfoJSON, "json", false, "print metadata as JSON")
	rootCmd.AddCommand(infoCmd)
}
