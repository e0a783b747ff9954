package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/smd/internal/compress"
	"github.com/ytget/smd/internal/errors"
	"github.com/ytget/smd/internal/logging"
	"github.com/ytget/smd/internal/model"
	"github.com/ytget/smd/internal/platform"
	"github.com/ytget/smd/internal/quality"
	"github.com/ytget/smd/internal/urldetect"
)

var (
	flagQuality  string
	flagFormat   string
	flagOutput   string
	flagURLsFile string
	flagRemux    bool
)

var downloadCmd = &cobra.Command{
	Use:   "download [url...]",
	Short: "Download one or more videos",
	Long: `download fetches videos from the given URLs. YouTube playlist URLs are
expanded into their individual videos. URLs can also be read from a file,
one per line, with --file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := collectURLs(args)
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			return fmt.Errorf("no URLs given")
		}
		for _, url := range urls {
			if !urldetect.IsSupported(url) {
				return errors.UnsupportedURL(url)
			}
		}

		if flagQuality != "" && !quality.Validate(flagQuality) {
			return fmt.Errorf("unknown quality %q, available: %v", flagQuality, quality.Names())
		}
		if flagOutput != "" {
			cfg.Download.OutputDir = flagOutput
		}
		if !cmd.Flags().Changed("remux") {
			flagRemux = cfg.Download.Remux
		}

		qualityName := flagQuality
		if qualityName == "" {
			qualityName = cfg.Download.DefaultQuality
		}
		format := flagFormat
		if format == "" {
			format = cfg.Download.DefaultFormat
		}

		urls, err = expandPlaylists(cmd, urls)
		if err != nil {
			return err
		}

		svc, err := newDownloadService()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var failures int
		for _, url := range urls {
			logging.UserInfo("downloading %s", url)
			task, err := svc.Download(cmd.Context(), url, qualityName, format, func(snap *model.DownloadTask) {
				fmt.Fprint(out, "\r"+progressLine(snap))
			})
			fmt.Fprint(out, "\r")
			if err != nil {
				logging.UserError("%s: %v", url, err)
				failures++
				continue
			}
			reportFinished(task)

			if flagRemux && task.OutputPath != "" {
				remuxed, err := compress.NewService().Remux(cmd.Context(), task.OutputPath)
				if err != nil {
					logging.UserWarning("remux failed for %s: %v", task.OutputPath, err)
				} else {
					logging.UserSuccess("remuxed to %s", remuxed)
				}
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d downloads failed", failures, len(urls))
		}
		return nil
	},
}

// collectURLs merges positional arguments with URLs read from --file
func collectURLs(args []string) ([]string, error) {
	urls := make([]string, 0, len(args))
	for _, arg := range args {
		// allow comma separated URL lists in a single argument
		for _, u := range strings.Split(arg, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
	}

	if flagURLsFile == "" {
		return urls, nil
	}

	f, err := os.Open(flagURLsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

// expandPlaylists replaces playlist URLs with their individual video URLs
func expandPlaylists(cmd *cobra.Command, urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	parser := platform.NewPlaylistParser()

	for _, url := range urls {
		if !platform.IsPlaylistURL(url) {
			out = append(out, url)
			continue
		}

		pl, err := parser.Parse(cmd.Context(), url)
		if err != nil {
			return nil, fmt.Errorf("failed to expand playlist %s: %w", url, err)
		}
		logging.UserInfo("playlist %q has %d videos", pl.Title, pl.Count())
		for _, v := range pl.Videos {
			out = append(out, v.URL)
		}
	}
	return out, nil
}

// progressLine renders one in-place progress line for a running task
func progressLine(t *model.DownloadTask) string {
	line := fmt.Sprintf("%5.1f%%", t.Percent)
	if t.Speed > 0 {
		line += "  " + model.FormatSpeed(t.Speed)
	}
	if eta := t.GetETAString(); eta != "" {
		line += "  ETA " + eta
	}
	return line
}

func reportFinished(task *model.DownloadTask) {
	title := task.GetDisplayTitle()
	if task.OutputPath != "" {
		logging.UserSuccess("%s -> %s", title, task.OutputPath)
	} else {
		logging.UserSuccess("%s", title)
	}
}

func init() {
	downloadCmd.Flags().StringVarP(&flagQuality, "quality", "q", "", "quality preset (default from config)")
	downloadCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format, e.g. mp4 or mp3")
	downloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output directory")
	downloadCmd.Flags().StringVarP(&flagURLsFile, "file", "F", "", "file with URLs, one per line")
	downloadCmd.Flags().BoolVar(&flagRemux, "remux", false, "remux output for web streaming after download")
	rootCmd.AddCommand(downloadCmd)
}
