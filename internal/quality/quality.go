// Package quality maps user facing quality names to yt-dlp format selectors.
package quality

import "strings"

// Preset describes a named download quality
type Preset struct {
	Name         string `json:"name"`
	FormatString string `json:"-"`
	Description  string `json:"description"`
	MaxHeight    int    `json:"max_height,omitempty"`
	AudioOnly    bool   `json:"is_audio_only"`
	AudioFormat  string `json:"-"`
}

// DefaultName is the preset used when none is specified
const DefaultName = "best"

var presets = map[string]Preset{
	"best": {
		Name:         "best",
		FormatString: "bestvideo+bestaudio/best",
		Description:  "Best available quality (video + audio)",
	},
	"worst": {
		Name:         "worst",
		FormatString: "worstvideo+worstaudio/worst",
		Description:  "Worst available quality",
	},
	"4k": {
		Name:         "4k",
		FormatString: "bestvideo[height<=2160]+bestaudio/best[height<=2160]",
		Description:  "Maximum 4K (2160p)",
		MaxHeight:    2160,
	},
	"1080p": {
		Name:         "1080p",
		FormatString: "bestvideo[height<=1080]+bestaudio/best[height<=1080]",
		Description:  "Full HD (1080p)",
		MaxHeight:    1080,
	},
	"720p": {
		Name:         "720p",
		FormatString: "bestvideo[height<=720]+bestaudio/best[height<=720]",
		Description:  "HD (720p)",
		MaxHeight:    720,
	},
	"480p": {
		Name:         "480p",
		FormatString: "bestvideo[height<=480]+bestaudio/best[height<=480]",
		Description:  "SD (480p)",
		MaxHeight:    480,
	},
	"360p": {
		Name:         "360p",
		FormatString: "bestvideo[height<=360]+bestaudio/best[height<=360]",
		Description:  "Low quality (360p)",
		MaxHeight:    360,
	},
	"audio": {
		Name:         "audio",
		FormatString: "bestaudio/best",
		Description:  "Best audio quality only",
		AudioOnly:    true,
	},
	"audio_mp3": {
		Name:         "audio_mp3",
		FormatString: "bestaudio/best",
		Description:  "Extract audio as MP3",
		AudioOnly:    true,
		AudioFormat:  "mp3",
	},
	"audio_m4a": {
		Name:         "audio_m4a",
		FormatString: "bestaudio/best",
		Description:  "Extract audio as M4A",
		AudioOnly:    true,
		AudioFormat:  "m4a",
	},
}

var presetOrder = []string{
	"best", "worst", "4k", "1080p", "720p", "480p", "360p",
	"audio", "audio_mp3", "audio_m4a",
}

// AudioFormats lists container formats accepted for audio extraction
var AudioFormats = []string{"mp3", "m4a", "opus", "aac", "flac", "wav"}

// VideoFormats lists container formats accepted for video output
var VideoFormats = []string{"mp4", "mkv", "webm", "avi"}

// Get returns the preset for a name, case insensitive
func Get(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(name)]
	return p, ok
}

// FormatString returns the yt-dlp selector for a quality name, falling back
// to the default preset for unknown names.
func FormatString(name string) string {
	if p, ok := Get(name); ok {
		return p.FormatString
	}
	return presets[DefaultName].FormatString
}

// Validate reports whether a quality name is known
func Validate(name string) bool {
	_, ok := Get(name)
	return ok
}

// IsAudioOnly reports whether a quality name selects audio only output
func IsAudioOnly(name string) bool {
	p, ok := Get(name)
	return ok && p.AudioOnly
}

// Names returns all preset names in display order
func Names() []string {
	out := make([]string, len(presetOrder))
	copy(out, presetOrder)
	return out
}

// Options returns all presets in display order
func Options() []Preset {
	out := make([]Preset, 0, len(presetOrder))
	for _, name := range presetOrder {
		out = append(out, presets[name])
	}
	return out
}

// ForHeight returns the highest preset whose height cap fits maxHeight
func ForHeight(maxHeight int) string {
	best := ""
	bestHeight := 0
	for name, p := range presets {
		if p.MaxHeight > 0 && p.MaxHeight <= maxHeight && p.MaxHeight > bestHeight {
			best = name
			bestHeight = p.MaxHeight
		}
	}
	if best == "" {
		return DefaultName
	}
	return best
}

// Recommended returns the preferred preset for a platform. Facebook and
// Instagram rarely serve above 720p so the cap avoids pointless probing.
func Recommended(platform string, preferredHeight int) string {
	if preferredHeight > 0 {
		return ForHeight(preferredHeight)
	}
	switch platform {
	case "facebook", "instagram":
		return "720p"
	default:
		return DefaultName
	}
}
