package download

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/smd/internal/model"
	"github.com/ytget/smd/internal/quality"
	"github.com/ytget/smd/internal/urldetect"
)

const (
	maxRetries   = 1
	retryBackoff = 2 * time.Second

	outputTemplate = "%(title)s.%(ext)s"
)

// Sentinel errors callers can test for with errors.Is
var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskNotActive = errors.New("task is not active")
)

// Service manages download tasks: queueing, parallelism limits, progress
// tracking and history of finished downloads.
type Service struct {
	engine Engine

	tasks      map[string]*model.DownloadTask
	tasksMutex sync.RWMutex

	maxParallel int
	activeCount int

	downloadDir string
	onUpdate    func(*model.DownloadTask)
}

// NewService creates a download service backed by the given engine
func NewService(engine Engine, downloadDir string, maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		engine:      engine,
		tasks:       make(map[string]*model.DownloadTask),
		maxParallel: maxParallel,
		downloadDir: downloadDir,
	}
}

// SetUpdateCallback sets the callback invoked on every task state change
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// DownloadDir returns the directory downloads are written into
func (s *Service) DownloadDir() string {
	return s.downloadDir
}

// AddTask queues a new download and starts it when a slot is free
func (s *Service) AddTask(url, qualityName, format string) (*model.DownloadTask, error) {
	if !urldetect.IsSupported(url) {
		return nil, fmt.Errorf("unsupported URL: %s", url)
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.URL == url && !task.Status.IsFinished() {
			return nil, fmt.Errorf("task already exists for URL: %s", url)
		}
	}

	platform := urldetect.Detect(url).String()
	if qualityName == "" {
		qualityName = quality.DefaultName
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		ContentID: GenerateContentID(platform, url),
		URL:       url,
		Platform:  platform,
		Quality:   qualityName,
		Format:    format,
		Status:    model.TaskStatusQueued,
		ETASec:    -1,
		CreatedAt: time.Now(),
	}

	s.tasks[task.ID] = task

	if s.activeCount < s.maxParallel {
		s.claimSlot(task)
		go s.startTask(task)
	}

	clone := *task
	return &clone, nil
}

// AddBatch queues downloads for several URLs. URLs that cannot be queued are
// reported in the returned map; the rest proceed normally.
func (s *Service) AddBatch(urls []string, qualityName, format string) ([]*model.DownloadTask, map[string]error) {
	tasks := make([]*model.DownloadTask, 0, len(urls))
	failed := make(map[string]error)
	for _, url := range urls {
		task, err := s.AddTask(url, qualityName, format)
		if err != nil {
			failed[url] = err
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, failed
}

// Download runs a single download synchronously and returns the finished
// task. When onProgress is non-nil it receives task snapshots while the
// download runs.
func (s *Service) Download(ctx context.Context, url, qualityName, format string, onProgress func(*model.DownloadTask)) (*model.DownloadTask, error) {
	task, err := s.AddTask(url, qualityName, format)
	if err != nil {
		return nil, err
	}

	// Poll until the task reaches a terminal state. The work happens in the
	// slot goroutine started by AddTask.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.CancelTask(task.ID)
			return s.snapshot(task.ID), ctx.Err()
		case <-ticker.C:
			snap := s.snapshot(task.ID)
			if snap == nil {
				continue
			}
			if snap.Status.IsFinished() {
				if snap.Status == model.TaskStatusFailed {
					return snap, fmt.Errorf("download failed: %s", snap.LastError)
				}
				return snap, nil
			}
			if onProgress != nil {
				onProgress(snap)
			}
		}
	}
}

// GetTask returns a copy of the task with the given ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	task := s.snapshot(id)
	return task, task != nil
}

// GetAllTasks returns copies of all tasks ordered by creation time
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		clone := *task
		tasks = append(tasks, &clone)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks
}

// History returns finished tasks, newest first
func (s *Service) History() []*model.DownloadTask {
	all := s.GetAllTasks()
	out := make([]*model.DownloadTask, 0, len(all))
	for _, task := range all {
		if task.Status.IsFinished() {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ClearHistory removes finished tasks
func (s *Service) ClearHistory() int {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	removed := 0
	for id, task := range s.tasks {
		if task.Status.IsFinished() {
			delete(s.tasks, id)
			removed++
		}
	}
	return removed
}

// RemoveTask deletes a finished task from the history
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if !task.Status.IsFinished() {
		return fmt.Errorf("task is still active: %s", id)
	}
	delete(s.tasks, id)
	return nil
}

// CancelTask requests cancellation of a queued or running task
func (s *Service) CancelTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	switch {
	case task.Status == model.TaskStatusQueued:
		task.Status = model.TaskStatusCancelled
		now := time.Now()
		task.FinishedAt = &now
		s.notifyUpdate(task)
		return nil
	case task.Status.IsActive():
		task.Status = model.TaskStatusStopping
		s.notifyUpdate(task)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrTaskNotActive, task.Status)
	}
}

// claimSlot reserves a parallelism slot and marks the task as starting.
// The caller must hold tasksMutex so two tasks cannot claim the same slot.
func (s *Service) claimSlot(task *model.DownloadTask) {
	s.activeCount++
	task.Status = model.TaskStatusStarting
	now := time.Now()
	task.StartedAt = &now
}

// startTask runs a task whose slot has already been claimed
func (s *Service) startTask(task *model.DownloadTask) {
	s.notifyUpdate(task)

	defer func() {
		s.tasksMutex.Lock()
		s.activeCount--
		s.tasksMutex.Unlock()

		s.startNextQueuedTask()
	}()

	s.tasksMutex.Lock()
	// a stop request may have arrived while the task was starting
	if task.Status == model.TaskStatusStarting {
		task.Status = model.TaskStatusDownloading
	}
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitor for cancellation requests
	go func() {
		for {
			s.tasksMutex.RLock()
			status := task.Status
			s.tasksMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
			if status.IsFinished() {
				return
			}
			time.Sleep(100 * time.Millisecond)
		}
	}()

	req := s.buildRequest(task)
	result, err := s.downloadWithRetry(ctx, req, task)

	s.tasksMutex.Lock()
	if err != nil {
		if ctx.Err() == context.Canceled {
			task.Status = model.TaskStatusCancelled
		} else {
			task.Status = model.TaskStatusFailed
			task.LastError = err.Error()
		}
	} else {
		task.Status = model.TaskStatusCompleted
		task.Percent = 100
		if result != nil && result.OutputPath != "" {
			task.OutputPath = result.OutputPath
		}
	}
	finished := time.Now()
	task.FinishedAt = &finished
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// buildRequest maps task settings onto an engine request
func (s *Service) buildRequest(task *model.DownloadTask) Request {
	req := Request{
		URL:            task.URL,
		FormatString:   quality.FormatString(task.Quality),
		OutputTemplate: s.downloadDir + "/" + outputTemplate,
	}
	if quality.IsAudioOnly(task.Quality) {
		req.AudioOnly = true
		if p, ok := quality.Get(task.Quality); ok && p.AudioFormat != "" {
			req.AudioFormat = p.AudioFormat
		} else if task.Format != "" {
			req.AudioFormat = task.Format
		}
	}
	return req
}

// downloadWithRetry attempts the download and retries once on failure
func (s *Service) downloadWithRetry(ctx context.Context, req Request, task *model.DownloadTask) (*Result, error) {
	var lastErr error
	var result *Result

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			slog.Info("retrying download", "task_id", task.ID, "attempt", attempt+1)
		}

		res, err := s.engine.Download(ctx, req, func(p Progress) {
			s.updateTaskProgress(task, p)
		})
		if err == nil {
			return res, nil
		}

		lastErr = err
		result = res
		slog.Warn("download attempt failed", "task_id", task.ID, "attempt", attempt+1, "error", err)

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}

	return result, lastErr
}

// updateTaskProgress folds an engine progress snapshot into the task
func (s *Service) updateTaskProgress(task *model.DownloadTask, p Progress) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task.DownloadedBytes = p.DownloadedBytes
	task.TotalBytes = p.TotalBytes

	if p.TotalBytes > 0 {
		task.Percent = float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
	}

	if !p.Started.IsZero() {
		elapsed := time.Since(p.Started)
		if elapsed.Seconds() > 0 {
			task.Speed = float64(p.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if p.ETA > 0 {
		task.ETASec = int(p.ETA.Seconds())
	}

	if p.Title != "" && task.Title == "" {
		task.Title = p.Title
	}

	s.notifyUpdate(task)
}

// startNextQueuedTask starts the oldest queued task if a slot is free
func (s *Service) startNextQueuedTask() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	if s.activeCount >= s.maxParallel {
		return
	}

	var next *model.DownloadTask
	for _, task := range s.tasks {
		if task.Status != model.TaskStatusQueued {
			continue
		}
		if next == nil || task.CreatedAt.Before(next.CreatedAt) {
			next = task
		}
	}
	if next != nil {
		s.claimSlot(next)
		go s.startTask(next)
	}
}

// snapshot returns a copy of a task under the read lock
func (s *Service) snapshot(id string) *model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil
	}
	clone := *task
	return &clone
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID returns a short unique task identifier
func generateTaskID() string {
	return uuid.NewString()[:8]
}

// GenerateContentID builds a stable-ish identifier for a piece of content
func GenerateContentID(platform, url string) string {
	h := fnv.New32a()
	h.Write([]byte(url))
	return fmt.Sprintf("%s_%d_%04d", platform, time.Now().Unix(), h.Sum32()%10000)
}
