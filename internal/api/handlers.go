package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ytget/smd/internal/download"
	"github.com/ytget/smd/internal/files"
	"github.com/ytget/smd/internal/platform"
	"github.com/ytget/smd/internal/quality"
	"github.com/ytget/smd/internal/urldetect"
	"github.com/ytget/smd/internal/version"
)

// Handlers bundles the services the HTTP API exposes
type Handlers struct {
	downloads   *download.Service
	downloadDir string
}

// NewHandlers creates the API handler set
func NewHandlers(downloads *download.Service) *Handlers {
	return &Handlers{
		downloads:   downloads,
		downloadDir: downloads.DownloadDir(),
	}
}

type downloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	Format  string `json:"format"`
}

type batchDownloadRequest struct {
	URLs    []string `json:"urls"`
	Quality string   `json:"quality"`
	Format  string   `json:"format"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"detail": fmt.Sprintf(format, args...)})
}

// HandleHealth handles GET /api/health
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "healthy",
		"version":             version.Version,
		"supported_platforms": urldetect.Supported(),
		"timestamp":           time.Now(),
	})
}

// HandleInfo handles GET /api/info?url=...
func (h *Handlers) HandleInfo(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing url parameter")
		return
	}
	if !urldetect.IsSupported(url) {
		writeError(w, http.StatusBadRequest, "unsupported URL, supported platforms: %v", urldetect.Supported())
		return
	}

	info, err := h.downloads.Info(r.Context(), url)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// HandleDownload handles POST /api/download
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if !urldetect.IsSupported(req.URL) {
		writeError(w, http.StatusBadRequest, "unsupported URL, supported platforms: %v", urldetect.Supported())
		return
	}

	task, err := h.downloads.AddTask(req.URL, req.Quality, req.Format)
	if err != nil {
		writeError(w, http.StatusConflict, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// HandleBatchDownload handles POST /api/download/batch
func (h *Handlers) HandleBatchDownload(w http.ResponseWriter, r *http.Request) {
	var req batchDownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if len(req.URLs) == 0 {
		writeError(w, http.StatusBadRequest, "no URLs provided")
		return
	}
	for _, url := range req.URLs {
		if !urldetect.IsSupported(url) {
			writeError(w, http.StatusBadRequest, "unsupported URL %s, supported platforms: %v", url, urldetect.Supported())
			return
		}
	}

	tasks, failed := h.downloads.AddBatch(req.URLs, req.Quality, req.Format)
	taskIDs := make([]string, 0, len(tasks))
	for _, task := range tasks {
		taskIDs = append(taskIDs, task.ID)
	}

	resp := map[string]any{
		"message":  fmt.Sprintf("Started %d downloads", len(tasks)),
		"task_ids": taskIDs,
		"total":    len(tasks),
	}
	if len(failed) > 0 {
		errs := make(map[string]string, len(failed))
		for url, err := range failed {
			errs[url] = err.Error()
		}
		resp["failed"] = errs
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleProgress handles GET /api/download/progress/{task_id}
func (h *Handlers) HandleProgress(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task_id")
	task, ok := h.downloads.GetTask(taskID)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// HandleCancel handles POST /api/download/cancel/{task_id}. Unknown tasks
// get 404, tasks that already finished get 400.
func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task_id")
	if err := h.downloads.CancelTask(taskID); err != nil {
		status := http.StatusNotFound
		if errors.Is(err, download.ErrTaskNotActive) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Task %s cancelled", taskID)})
}

// HandleQualities handles GET /api/qualities. With a url query parameter it
// returns the presets recommended for that URL's platform.
func (h *Handlers) HandleQualities(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, http.StatusOK, quality.Options())
		return
	}

	handler := platform.Resolve(url)
	if handler == nil {
		writeError(w, http.StatusBadRequest, "unsupported URL, supported platforms: %v", urldetect.Supported())
		return
	}

	opts := make([]quality.Preset, 0)
	for _, name := range handler.Qualities() {
		if p, ok := quality.Get(name); ok {
			opts = append(opts, p)
		}
	}
	writeJSON(w, http.StatusOK, opts)
}

// HandlePlatforms handles GET /api/platforms
func (h *Handlers) HandlePlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"platforms":       urldetect.Supported(),
		"quality_options": quality.Options(),
	})
}

// HandleHistory handles GET /api/history
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	items := h.downloads.History()
	writeJSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"total_count": len(items),
	})
}

// HandleClearHistory handles DELETE /api/history
func (h *Handlers) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	h.downloads.ClearHistory()
	writeJSON(w, http.StatusOK, map[string]string{"message": "History cleared"})
}

// HandleDeleteHistoryItem handles DELETE /api/history/{task_id}
func (h *Handlers) HandleDeleteHistoryItem(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task_id")
	if err := h.downloads.RemoveTask(taskID); err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Task %s removed", taskID)})
}

// HandleListFiles handles GET /api/files
func (h *Handlers) HandleListFiles(w http.ResponseWriter, r *http.Request) {
	list, err := files.List(h.downloadDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}

	type fileEntry struct {
		files.Info
		URL       string `json:"url"`
		ContentID string `json:"content_id"`
	}
	out := make([]fileEntry, 0, len(list))
	for _, f := range list {
		out = append(out, fileEntry{
			Info:      f,
			URL:       "/files/" + f.Name,
			ContentID: download.GenerateContentID("file", f.Name),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"files":         out,
		"total":         len(out),
		"downloads_dir": h.downloadDir,
	})
}

// HandleGetFile handles GET /api/files/{filename}
func (h *Handlers) HandleGetFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	path, err := files.SafeJoin(h.downloadDir, name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}
	if _, err := files.Stat(h.downloadDir, name); err != nil {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

// HandleDeleteFile handles DELETE /api/files/{filename}
func (h *Handlers) HandleDeleteFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	if err := files.Delete(h.downloadDir, name); err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("File %s deleted", name)})
}
