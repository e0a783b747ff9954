package model

import "time"

// VideoInfo holds metadata extracted for a URL before downloading
type VideoInfo struct {
	ID                 string       `json:"id"`
	ContentID          string       `json:"content_id,omitempty"`
	Title              string       `json:"title"`
	Uploader           string       `json:"uploader,omitempty"`
	Platform           string       `json:"platform,omitempty"`
	Duration           float64      `json:"duration,omitempty"`
	ViewCount          int64        `json:"view_count,omitempty"`
	UploadDate         string       `json:"upload_date,omitempty"`
	Thumbnail          string       `json:"thumbnail,omitempty"`
	Description        string       `json:"description,omitempty"`
	WebpageURL         string       `json:"webpage_url,omitempty"`
	AvailableQualities []string     `json:"available_qualities,omitempty"`
	IsLive             bool         `json:"is_live"`
	Formats            []FormatInfo `json:"formats,omitempty"`
}

// FormatInfo describes a single available media format
type FormatInfo struct {
	FormatID   string  `json:"format_id"`
	Ext        string  `json:"ext,omitempty"`
	Resolution string  `json:"resolution,omitempty"`
	Height     int     `json:"height,omitempty"`
	FPS        float64 `json:"fps,omitempty"`
	VCodec     string  `json:"vcodec,omitempty"`
	ACodec     string  `json:"acodec,omitempty"`
	Filesize   int64   `json:"filesize,omitempty"`
}

// DurationFormatted returns the duration as H:MM:SS or M:SS
func (v *VideoInfo) DurationFormatted() string {
	if v.Duration <= 0 {
		return ""
	}
	return FormatDuration(time.Duration(v.Duration) * time.Second)
}
