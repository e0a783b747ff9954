// Package compress post-processes downloaded videos with ffmpeg: full
// re-encodes for smaller files and fast remuxes for web playback.
package compress

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/smd/internal/model"
)

// FFmpeg settings
const (
	VideoCodec  = "libx264"
	VideoPreset = "medium"
	VideoCRF    = "23"

	AudioCodec   = "aac"
	AudioBitrate = "128k"

	FastStartFlag = "+faststart"

	CompressedSuffix = "-compressed"
	RemuxedSuffix    = "-remuxed"

	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	TaskIDPrefix        = "compress-"
	OutputExtensionMP4  = ".mp4"
)

// Service handles video compression operations
type Service struct {
	tasks      map[string]*model.CompressionTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.CompressionTask)
}

// NewService creates a new compression service
func NewService() Compressor {
	return &Service{
		tasks: make(map[string]*model.CompressionTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.CompressionTask)) {
	s.onUpdate = callback
}

// StartCompression starts compressing a video file in the background
func (s *Service) StartCompression(inputPath string) (*model.CompressionTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.InputPath == inputPath && task.Status.IsActive() {
			return nil, fmt.Errorf("compression already in progress for file: %s", inputPath)
		}
	}

	fi, err := os.Stat(inputPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	task := &model.CompressionTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: generateOutputPath(inputPath, CompressedSuffix),
		Status:     model.TaskStatusQueued,
		CreatedAt:  time.Now(),
	}
	if fi != nil {
		task.OriginalSize = fi.Size()
	}

	s.tasks[task.ID] = task

	go s.runCompression(task)

	clone := *task
	return &clone, nil
}

// StopCompression stops a running compression task
func (s *Service) StopCompression(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("compression task not found: %s", taskID)
	}

	if !task.Status.IsActive() {
		return fmt.Errorf("compression task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	s.notifyUpdate(task)

	return nil
}

// GetTask returns a snapshot of a compression task by ID
func (s *Service) GetTask(taskID string) (*model.CompressionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	if !exists {
		return nil, false
	}
	clone := *task
	return &clone, true
}

// Remux rewrites the container without re-encoding, moving the moov atom to
// the front so the file streams well over HTTP. Returns the output path.
func (s *Service) Remux(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return "", fmt.Errorf("input file does not exist: %s", inputPath)
	}

	outputPath := generateOutputPath(inputPath, RemuxedSuffix)
	args := []string{
		"-y",
		"-i", inputPath,
		"-c", "copy",
		"-movflags", FastStartFlag,
		outputPath,
	}

	cmd := exec.CommandContext(ctx, FFmpegCommand, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg remux failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return outputPath, nil
}

// runCompression performs the actual compression
func (s *Service) runCompression(task *model.CompressionTask) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	duration, err := s.getVideoDuration(task.InputPath)
	if err != nil {
		slog.Error("failed to get video duration", "path", task.InputPath, "error", err)
		s.setTaskError(task, err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitor for stop requests
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

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusProcessing
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	args := s.BuildFFmpegArgs(task.InputPath, task.OutputPath)
	cmd := exec.CommandContext(ctx, FFmpegCommand, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.setTaskError(task, fmt.Errorf("failed to create stderr pipe: %w", err))
		return
	}

	if err := cmd.Start(); err != nil {
		s.setTaskError(task, fmt.Errorf("failed to start ffmpeg: %w", err))
		return
	}

	go s.monitorProgress(stderr, task, duration)

	err = cmd.Wait()

	s.tasksMutex.Lock()
	if ctx.Err() == context.Canceled {
		task.Status = model.TaskStatusCancelled
		os.Remove(task.OutputPath)
	} else if err != nil {
		task.Status = model.TaskStatusFailed
		task.LastError = err.Error()
		os.Remove(task.OutputPath)
	} else {
		task.Status = model.TaskStatusCompleted
		task.Percent = 100
		if fi, statErr := os.Stat(task.OutputPath); statErr == nil {
			task.CompressedSize = fi.Size()
		}
	}
	finished := time.Now()
	task.FinishedAt = &finished
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (s *Service) BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c:v", VideoCodec,
		"-preset", VideoPreset,
		"-crf", VideoCRF,
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		"-movflags", FastStartFlag,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	}
}

// getVideoDuration gets the duration of a video file using ffprobe
func (s *Service) getVideoDuration(filePath string) (float64, error) {
	cmd := exec.Command(FFprobeCommand, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}

// monitorProgress parses ffmpeg progress lines: out_time_us=123456
func (s *Service) monitorProgress(stderr io.ReadCloser, task *model.CompressionTask, totalDuration float64) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if !strings.HasPrefix(line, ProgressTimePrefix) {
			continue
		}
		timeStr := strings.TrimPrefix(line, ProgressTimePrefix)
		timeMicroseconds, err := strconv.ParseInt(timeStr, 10, 64)
		if err != nil {
			continue
		}

		timeSeconds := float64(timeMicroseconds) / 1000000.0

		if totalDuration > 0 {
			percent := timeSeconds / totalDuration * 100
			if percent > 100 {
				percent = 100
			}

			s.tasksMutex.Lock()
			task.Percent = percent
			s.tasksMutex.Unlock()

			s.notifyUpdate(task)
		}
	}
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.CompressionTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusFailed
	task.LastError = err.Error()
	finished := time.Now()
	task.FinishedAt = &finished
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.CompressionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateOutputPath derives the output path from the input path
func generateOutputPath(inputPath, suffix string) string {
	ext := filepath.Ext(inputPath)
	baseName := strings.TrimSuffix(inputPath, ext)
	return baseName + suffix + OutputExtensionMP4
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
