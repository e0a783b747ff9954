package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/smd/internal/compress"
	"github.com/ytget/smd/internal/logging"
	"github.com/ytget/smd/internal/model"
)

var flagRemuxOnly bool

var compressCmd = &cobra.Command{
	Use:   "compress <file>",
	Short: "Re-encode a video to shrink the file",
	Long: `compress re-encodes a video with libx264/aac to reduce its size. With
--remux-only the container is rewritten without re-encoding instead, which
is much faster and prepares the file for web streaming.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := compress.NewService()

		if flagRemuxOnly {
			out, err := svc.Remux(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logging.UserSuccess("remuxed to %s", out)
			return nil
		}

		task, err := svc.StartCompression(args[0])
		if err != nil {
			return err
		}
		logging.UserInfo("compressing %s", args[0])

		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-cmd.Context().Done():
				if err := svc.StopCompression(task.ID); err == nil {
					logging.UserWarning("compression cancelled")
				}
				return cmd.Context().Err()
			case <-ticker.C:
			}

			cur, ok := svc.GetTask(task.ID)
			if !ok {
				return fmt.Errorf("compression task %s disappeared", task.ID)
			}
			if !cur.Status.IsFinished() {
				continue
			}

			switch cur.Status {
			case model.TaskStatusCompleted:
				logging.UserSuccess("%s -> %s (%s, %.0f%% of original)",
					cur.InputPath, cur.OutputPath,
					model.FormatBytes(cur.CompressedSize), cur.CompressionRatio())
				return nil
			case model.TaskStatusCancelled:
				return fmt.Errorf("compression cancelled")
			default:
				return fmt.Errorf("compression failed: %s", cur.LastError)
			}
		}
	},
}

func init() {
	compressCmd.Flags().BoolVar(&flagRemuxOnly, "remux-only", false, "rewrite the container without re-encoding")
	rootCmd.AddCommand(compressCmd)
}
