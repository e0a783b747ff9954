package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/smd/internal/model"
	"github.com/ytget/ytdlp/v2"
)

const (
	defaultParseTimeout = 60 * time.Second

	playlistParam  = "list="
	paramSeparator = "&"

	videoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistParser expands YouTube playlist URLs into individual video entries
type PlaylistParser struct {
	timeout time.Duration
}

// NewPlaylistParser creates a parser with the default timeout
func NewPlaylistParser() *PlaylistParser {
	return &PlaylistParser{timeout: defaultParseTimeout}
}

// SetTimeout sets the timeout for parsing operations
func (p *PlaylistParser) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL reports whether the URL carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, playlistParam)
}

// ExtractPlaylistID pulls the playlist identifier out of a URL
func ExtractPlaylistID(url string) string {
	if !strings.Contains(url, playlistParam) {
		return ""
	}
	parts := strings.Split(url, playlistParam)
	if len(parts) < 2 {
		return ""
	}
	id := parts[1]
	if i := strings.Index(id, paramSeparator); i >= 0 {
		id = id[:i]
	}
	return id
}

// Parse fetches playlist entries and returns them as a Playlist
func (p *PlaylistParser) Parse(ctx context.Context, url string) (*model.Playlist, error) {
	if !IsPlaylistURL(url) {
		return nil, fmt.Errorf("invalid playlist URL: %s", url)
	}

	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %v", err)
	}

	videos := make([]model.PlaylistVideo, 0, len(items))
	for _, it := range items {
		videos = append(videos, model.PlaylistVideo{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(videoURLTemplate, it.VideoID),
		})
	}

	return &model.Playlist{
		ID:     playlistID,
		Title:  playlistTitle(videos),
		URL:    url,
		Videos: videos,
	}, nil
}

// playlistTitle derives a display title from the entries
func playlistTitle(videos []model.PlaylistVideo) string {
	if len(videos) == 0 {
		return "Unknown Playlist"
	}
	if len(videos) > 1 {
		prefix := commonPrefix(videos[0].Title, videos[1].Title)
		if len(prefix) > 10 {
			return strings.TrimSpace(prefix) + " Playlist"
		}
	}
	return videos[0].Title + " Playlist"
}

func commonPrefix(s1, s2 string) string {
	n := min(len(s1), len(s2))
	for i := 0; i < n; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:n]
}
