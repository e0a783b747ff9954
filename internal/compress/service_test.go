package compress

import (
	"strings"
	"testing"

	"github.com/ytget/smd/internal/model"
)

func TestBuildFFmpegArgs(t *testing.T) {
	s := &Service{tasks: make(map[string]*model.CompressionTask)}
	args := s.BuildFFmpegArgs("/in/video.mp4", "/out/video-compressed.mp4")

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-i /in/video.mp4",
		"-c:v " + VideoCodec,
		"-crf " + VideoCRF,
		"-c:a " + AudioCodec,
		"-movflags " + FastStartFlag,
		"-progress " + ProgressPipeTarget,
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("ffmpeg args missing %q: %s", want, joined)
		}
	}
	if args[len(args)-1] != "/out/video-compressed.mp4" {
		t.Errorf("last arg = %q, want output path", args[len(args)-1])
	}
}

func TestGenerateOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		suffix string
		want   string
	}{
		{"/downloads/video.mp4", CompressedSuffix, "/downloads/video-compressed.mp4"},
		{"/downloads/video.webm", CompressedSuffix, "/downloads/video-compressed.mp4"},
		{"/downloads/clip.mkv", RemuxedSuffix, "/downloads/clip-remuxed.mp4"},
		{"noext", CompressedSuffix, "noext-compressed.mp4"},
	}

	for _, tt := range tests {
		if got := generateOutputPath(tt.input, tt.suffix); got != tt.want {
			t.Errorf("generateOutputPath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("task ID %q missing prefix %q", id1, TaskIDPrefix)
	}
	if id1 == id2 {
		t.Error("consecutive task IDs are identical")
	}
}

func TestStartCompressionMissingFile(t *testing.T) {
	s := NewService()
	if _, err := s.StartCompression("/nonexistent/file.mp4"); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestStopCompressionUnknownTask(t *testing.T) {
	s := NewService()
	if err := s.StopCompression("nope"); err == nil {
		t.Error("expected error for unknown task ID")
	}
}

func TestRemuxMissingFile(t *testing.T) {
	s := NewService()
	if _, err := s.Remux(t.Context(), "/nonexistent/file.mp4"); err == nil {
		t.Error("expected error for missing input file")
	}
}
