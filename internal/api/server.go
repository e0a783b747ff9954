// Package api serves the HTTP interface: download management, metadata
// lookups and file serving over a plain net/http server.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ytget/smd/internal/download"
)

// Server wraps the HTTP server and its routes
type Server struct {
	httpServer *http.Server
	handlers   *Handlers
}

// NewServer builds a server listening on addr
func NewServer(addr string, downloads *download.Service) *Server {
	h := NewHandlers(downloads)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/info", h.HandleInfo)
	mux.HandleFunc("POST /api/download", h.HandleDownload)
	mux.HandleFunc("POST /api/download/batch", h.HandleBatchDownload)
	mux.HandleFunc("GET /api/download/progress/{task_id}", h.HandleProgress)
	mux.HandleFunc("POST /api/download/cancel/{task_id}", h.HandleCancel)
	mux.HandleFunc("GET /api/qualities", h.HandleQualities)
	mux.HandleFunc("GET /api/platforms", h.HandlePlatforms)
	mux.HandleFunc("GET /api/history", h.HandleHistory)
	mux.HandleFunc("DELETE /api/history", h.HandleClearHistory)
	mux.HandleFunc("DELETE /api/history/{task_id}", h.HandleDeleteHistoryItem)
	mux.HandleFunc("GET /api/files", h.HandleListFiles)
	mux.HandleFunc("GET /api/files/{filename}", h.HandleGetFile)
	mux.HandleFunc("DELETE /api/files/{filename}", h.HandleDeleteFile)

	// direct static serving of finished downloads
	mux.Handle("GET /files/", http.StripPrefix("/files/", http.FileServer(http.Dir(downloads.DownloadDir()))))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           withCORS(withRequestLog(mux)),
			ReadHeaderTimeout: 10 * time.Second,
		},
		handlers: h,
	}
}

// Handler returns the root handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts serving and blocks until the server stops
func (s *Server) ListenAndServe() error {
	slog.Info("API server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// withCORS allows browser clients from any origin to call the API
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestLog logs each request at debug level
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
