package model

// Playlist represents a playlist resolved from a URL
type Playlist struct {
	ID     string          `json:"id"`
	Title  string          `json:"title,omitempty"`
	URL    string          `json:"url"`
	Videos []PlaylistVideo `json:"videos"`
}

// PlaylistVideo is a single entry inside a playlist
type PlaylistVideo struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title,omitempty"`
	URL     string `json:"url"`
}

// Count returns the number of videos in the playlist
func (p *Playlist) Count() int {
	return len(p.Videos)
}
