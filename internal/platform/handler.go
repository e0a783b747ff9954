// Package platform holds per platform behavior: domain matching, recommended
// quality presets and YouTube playlist expansion.
package platform

import (
	"strings"

	"github.com/ytget/smd/internal/quality"
	"github.com/ytget/smd/internal/urldetect"
)

// Handler describes platform specific defaults
type Handler interface {
	// Name returns the platform identifier, e.g. "youtube"
	Name() string
	// Domains returns the domain fragments this handler claims
	Domains() []string
	// RecommendedQuality returns the preset to use when none is given
	RecommendedQuality() string
	// Qualities returns the quality presets worth offering for this platform
	Qualities() []string
	// Match reports whether the URL belongs to this platform
	Match(url string) bool
}

// matchDomains is the shared Match implementation
func matchDomains(url string, domains []string) bool {
	url = strings.ToLower(url)
	for _, d := range domains {
		if strings.Contains(url, d) {
			return true
		}
	}
	return false
}

type youtubeHandler struct{}

func (youtubeHandler) Name() string { return urldetect.PlatformYouTube.String() }

func (youtubeHandler) Domains() []string {
	return []string{"youtube.com", "youtu.be", "youtube-nocookie.com"}
}

func (youtubeHandler) RecommendedQuality() string { return quality.DefaultName }

func (youtubeHandler) Qualities() []string {
	return []string{"best", "4k", "1080p", "720p", "480p", "360p", "audio", "audio_mp3"}
}

func (h youtubeHandler) Match(url string) bool { return matchDomains(url, h.Domains()) }

type facebookHandler struct{}

func (facebookHandler) Name() string { return urldetect.PlatformFacebook.String() }

func (facebookHandler) Domains() []string {
	return []string{"facebook.com", "fb.watch", "fb.com"}
}

func (facebookHandler) RecommendedQuality() string { return "720p" }

func (facebookHandler) Qualities() []string {
	return []string{"best", "720p", "480p", "360p", "audio"}
}

func (h facebookHandler) Match(url string) bool { return matchDomains(url, h.Domains()) }

type instagramHandler struct{}

func (instagramHandler) Name() string { return urldetect.PlatformInstagram.String() }

func (instagramHandler) Domains() []string {
	return []string{"instagram.com", "instagr.am"}
}

func (instagramHandler) RecommendedQuality() string { return "720p" }

func (instagramHandler) Qualities() []string {
	return []string{"best", "720p", "480p", "audio"}
}

func (h instagramHandler) Match(url string) bool { return matchDomains(url, h.Domains()) }
