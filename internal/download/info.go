package download

import (
	"context"
	"fmt"

	"github.com/ytget/smd/internal/model"
	"github.com/ytget/smd/internal/platform"
	"github.com/ytget/smd/internal/urldetect"
)

// Info fetches video metadata without downloading
func (s *Service) Info(ctx context.Context, url string) (*model.VideoInfo, error) {
	p := urldetect.Detect(url)
	if p == urldetect.PlatformUnknown {
		return nil, fmt.Errorf("unsupported URL: %s", url)
	}

	info, err := s.engine.Probe(ctx, url)
	if err != nil {
		return nil, err
	}
	info.Platform = p.String()
	info.ContentID = GenerateContentID(p.String(), url)
	if handler := platform.ByName(p.String()); handler != nil {
		info.AvailableQualities = handler.Qualities()
	}
	if info.WebpageURL == "" {
		info.WebpageURL = url
	}
	return info, nil
}
