package platform

import (
	"testing"

	"github.com/ytget/smd/internal/model"
)

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/playlist?list=PLabc123", true},
		{"https://www.youtube.com/watch?v=abc&list=PLabc123", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsPlaylistURL(tt.url); got != tt.want {
			t.Errorf("IsPlaylistURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/playlist?list=PLabc123", "PLabc123"},
		{"https://www.youtube.com/watch?v=abc&list=PLabc123&index=2", "PLabc123"},
		{"https://www.youtube.com/watch?v=abc", ""},
	}

	for _, tt := range tests {
		if got := ExtractPlaylistID(tt.url); got != tt.want {
			t.Errorf("ExtractPlaylistID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestPlaylistTitle(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   string
	}{
		{"empty", nil, "Unknown Playlist"},
		{"single", []string{"My Video"}, "My Video Playlist"},
		{"common prefix", []string{"Go Tutorial Part 1", "Go Tutorial Part 2"}, "Go Tutorial Part Playlist"},
		{"no common prefix", []string{"Alpha", "Beta"}, "Alpha Playlist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := make([]model.PlaylistVideo, 0, len(tt.titles))
			for _, title := range tt.titles {
				videos = append(videos, model.PlaylistVideo{Title: title})
			}
			if got := playlistTitle(videos); got != tt.want {
				t.Errorf("playlistTitle(%v) = %q, want %q", tt.titles, got, tt.want)
			}
		})
	}
}

func TestParseRejectsNonPlaylistURL(t *testing.T) {
	p := NewPlaylistParser()
	if _, err := p.Parse(t.Context(), "https://www.youtube.com/watch?v=abc"); err == nil {
		t.Error("expected error for URL without playlist parameter")
	}
}
