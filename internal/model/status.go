package model

// TaskStatus represents the lifecycle state of a download or post-processing task
type TaskStatus string

const (
	// TaskStatusQueued means the task is created but not yet started
	TaskStatusQueued TaskStatus = "queued"

	// TaskStatusStarting means the task is in the process of starting
	TaskStatusStarting TaskStatus = "starting"

	// TaskStatusDownloading means the download is in progress
	TaskStatusDownloading TaskStatus = "downloading"

	// TaskStatusProcessing means the downloaded file is being post-processed
	TaskStatusProcessing TaskStatus = "processing"

	// TaskStatusStopping means a cancel was requested and the task is winding down
	TaskStatusStopping TaskStatus = "stopping"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "completed"

	// TaskStatusFailed means the task failed with an error
	TaskStatusFailed TaskStatus = "failed"

	// TaskStatusCancelled means the task was cancelled by the user
	TaskStatusCancelled TaskStatus = "cancelled"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusDownloading ||
		ts == TaskStatusProcessing || ts == TaskStatusStopping
}

// IsFinished returns true if the task is in a terminal state
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusFailed || ts == TaskStatusCancelled
}
