package model

import "testing"

func TestGetDisplayTitle(t *testing.T) {
	task := &DownloadTask{URL: "https://youtube.com/watch?v=abc"}
	if got := task.GetDisplayTitle(); got != task.URL {
		t.Errorf("GetDisplayTitle() = %q, want URL fallback", got)
	}

	task.Title = "Some Video"
	if got := task.GetDisplayTitle(); got != "Some Video" {
		t.Errorf("GetDisplayTitle() = %q, want %q", got, "Some Video")
	}
}

func TestGetETAString(t *testing.T) {
	task := &DownloadTask{}
	if got := task.GetETAString(); got != "" {
		t.Errorf("GetETAString() = %q, want empty for zero ETA", got)
	}

	task.ETASec = 75
	if got := task.GetETAString(); got != "1:15" {
		t.Errorf("GetETAString() = %q, want %q", got, "1:15")
	}
}

func TestCompressionRatio(t *testing.T) {
	task := &CompressionTask{OriginalSize: 1000, CompressedSize: 400}
	if got := task.CompressionRatio(); got != 40 {
		t.Errorf("CompressionRatio() = %v, want 40", got)
	}

	task = &CompressionTask{}
	if got := task.CompressionRatio(); got != 0 {
		t.Errorf("CompressionRatio() = %v, want 0 for unknown sizes", got)
	}
}
