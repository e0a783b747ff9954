package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/smd/internal/api"
	"github.com/ytget/smd/internal/logging"
)

var (
	flagServeHost string
	flagServePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagServeHost != "" {
			cfg.API.Host = flagServeHost
		}
		if flagServePort != 0 {
			cfg.API.Port = flagServePort
		}

		svc, err := newDownloadService()
		if err != nil {
			return err
		}

		srv := api.NewServer(cfg.API.Addr(), svc)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		logging.UserInfo("Starting Social Media Downloader API on http://%s", cfg.API.Addr())
		logging.UserInfo("Downloads directory: %s", cfg.Download.OutputDir)
		logging.UserInfo("Static files mounted at /files")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case sig := <-sigCh:
			logging.UserInfo("received %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagServeHost, "host", "", "listen host (overrides config)")
	serveCmd.Flags().IntVarP(&flagServePort, "port", "p", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
