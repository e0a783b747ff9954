// Package urldetect identifies the source platform of a media URL.
package urldetect

import (
	"regexp"
	"strings"
)

// Platform identifies a supported video platform
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformUnknown   Platform = "unknown"
)

// String returns the platform name
func (p Platform) String() string {
	return string(p)
}

var platformPatterns = map[Platform][]*regexp.Regexp{
	PlatformYouTube: {
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/shorts/[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/playlist\?list=[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube-nocookie\.com/embed/[\w-]+`),
	},
	PlatformFacebook: {
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?facebook\.com/[\w./-]+/videos?/[\w/-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?facebook\.com/watch/\?v=\w+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?facebook\.com/reel/[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?fb\.watch/[\w/-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?facebook\.com/[\w.]+/posts/[\w-]+`),
	},
	PlatformInstagram: {
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/reel/[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/p/[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagr\.am/p/[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/tv/[\w-]+`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/stories/[\w./-]+/[\w-]+`),
	},
}

// ID patterns match case-insensitively against the raw URL so that
// case-sensitive identifiers (YouTube video IDs) come back unchanged.
var idPatterns = map[Platform][]*regexp.Regexp{
	PlatformYouTube: {
		regexp.MustCompile(`(?i)youtube\.com/watch\?v=([\w-]+)`),
		regexp.MustCompile(`(?i)youtu\.be/([\w-]+)`),
		regexp.MustCompile(`(?i)youtube\.com/shorts/([\w-]+)`),
		regexp.MustCompile(`(?i)youtube\.com/embed/([\w-]+)`),
	},
	PlatformFacebook: {
		regexp.MustCompile(`(?i)facebook\.com/.*/videos?/([\w-]+)`),
		regexp.MustCompile(`(?i)facebook\.com/watch/\?v=(\w+)`),
		regexp.MustCompile(`(?i)facebook\.com/reel/([\w-]+)`),
	},
	PlatformInstagram: {
		regexp.MustCompile(`(?i)instagram\.com/(?:reel|p)/([\w-]+)`),
		regexp.MustCompile(`(?i)instagram\.com/tv/([\w-]+)`),
	},
}

// detection order is fixed so results are deterministic
var detectOrder = []Platform{PlatformYouTube, PlatformFacebook, PlatformInstagram}

// Normalize trims the URL, lowercases it and prepends https:// when the
// scheme is missing.
func Normalize(url string) string {
	url = strings.ToLower(strings.TrimSpace(url))
	if url == "" {
		return url
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url
}

// Detect returns the platform a URL belongs to, or PlatformUnknown
func Detect(url string) Platform {
	url = Normalize(url)
	if url == "" {
		return PlatformUnknown
	}
	for _, p := range detectOrder {
		for _, re := range platformPatterns[p] {
			if re.MatchString(url) {
				return p
			}
		}
	}
	return PlatformUnknown
}

// IsSupported reports whether the URL matches any known platform
func IsSupported(url string) bool {
	return Detect(url) != PlatformUnknown
}

// Supported returns the names of all supported platforms
func Supported() []string {
	names := make([]string, 0, len(detectOrder))
	for _, p := range detectOrder {
		names = append(names, p.String())
	}
	return names
}

// ExtractVideoID pulls the platform specific video identifier out of a URL,
// preserving its case. Returns an empty string when no identifier is found.
func ExtractVideoID(url string, platform Platform) string {
	url = strings.TrimSpace(url)
	for _, re := range idPatterns[platform] {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}
