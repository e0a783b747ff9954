package model

import (
	"fmt"
	"time"
)

// DownloadTask represents a single download job and its live progress.
// Field tags match the JSON shape served by the HTTP API.
type DownloadTask struct {
	ID        string `json:"task_id"`
	ContentID string `json:"content_id,omitempty"`
	URL       string `json:"url"`
	Platform  string `json:"platform,omitempty"`
	Title     string `json:"title,omitempty"`
	Quality   string `json:"quality,omitempty"`
	Format    string `json:"format,omitempty"`

	Status  TaskStatus `json:"status"`
	Percent float64    `json:"progress"`
	Message string     `json:"message,omitempty"`

	DownloadedBytes int64   `json:"downloaded_bytes,omitempty"`
	TotalBytes      int64   `json:"total_bytes,omitempty"`
	Speed           float64 `json:"speed,omitempty"`
	ETASec          int     `json:"eta,omitempty"`

	OutputPath string `json:"file_path,omitempty"`
	FileSize   int64  `json:"file_size,omitempty"`
	LastError  string `json:"error,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// GetDisplayTitle returns the title when known, falling back to the URL
func (t *DownloadTask) GetDisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.URL
}

// GetETAString returns a human readable remaining time estimate
func (t *DownloadTask) GetETAString() string {
	if t.ETASec <= 0 {
		return ""
	}
	return FormatDuration(time.Duration(t.ETASec) * time.Second)
}

// IsActive reports whether the task is currently running
func (t *DownloadTask) IsActive() bool {
	return t.Status.IsActive()
}

// IsFinished reports whether the task reached a terminal state
func (t *DownloadTask) IsFinished() bool {
	return t.Status.IsFinished()
}

// CompressionTask represents a video compression job
type CompressionTask struct {
	ID         string     `json:"task_id"`
	InputPath  string     `json:"input_path"`
	OutputPath string     `json:"output_path"`
	Status     TaskStatus `json:"status"`
	Percent    float64    `json:"progress"`
	LastError  string     `json:"error,omitempty"`

	OriginalSize   int64 `json:"original_size,omitempty"`
	CompressedSize int64 `json:"compressed_size,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// CompressionRatio returns the output/input size ratio as a percentage,
// or 0 when sizes are unknown.
func (t *CompressionTask) CompressionRatio() float64 {
	if t.OriginalSize <= 0 || t.CompressedSize <= 0 {
		return 0
	}
	return float64(t.CompressedSize) / float64(t.OriginalSize) * 100
}

// Summary returns a one line description suitable for logs
func (t *CompressionTask) Summary() string {
	return fmt.Sprintf("%s: %s (%.0f%%)", t.ID, t.Status, t.Percent)
}
