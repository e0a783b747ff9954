package download

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/smd/internal/model"
)

// Progress is a snapshot of download progress reported by the engine
type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
	Started         time.Time
	ETA             time.Duration
	Title           string
}

// ProgressFn receives progress snapshots during a download
type ProgressFn func(Progress)

// Request describes a single download
type Request struct {
	URL            string
	FormatString   string
	OutputTemplate string
	AudioOnly      bool
	AudioFormat    string
}

// Result is what the engine reports after a finished download
type Result struct {
	OutputPath string
}

// Engine runs the actual media extraction. The production implementation
// shells out to yt-dlp; tests substitute a fake.
type Engine interface {
	Download(ctx context.Context, req Request, onProgress ProgressFn) (*Result, error)
	Probe(ctx context.Context, url string) (*model.VideoInfo, error)
}

// YTDLPEngine downloads media via the yt-dlp binary
type YTDLPEngine struct {
	progressInterval time.Duration
}

// NewYTDLPEngine creates the default engine
func NewYTDLPEngine() *YTDLPEngine {
	return &YTDLPEngine{progressInterval: 500 * time.Millisecond}
}

// Download runs yt-dlp for a single URL
func (e *YTDLPEngine) Download(ctx context.Context, req Request, onProgress ProgressFn) (*Result, error) {
	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Output(req.OutputTemplate)

	if req.FormatString != "" {
		dl = dl.Format(req.FormatString)
	}
	if req.AudioOnly && req.AudioFormat != "" {
		dl = dl.ExtractAudio().AudioFormat(req.AudioFormat)
	}

	if onProgress != nil {
		dl.ProgressFunc(e.progressInterval, func(update ytdlp.ProgressUpdate) {
			p := Progress{
				DownloadedBytes: int64(update.DownloadedBytes),
				TotalBytes:      int64(update.TotalBytes),
				Started:         update.Started,
				ETA:             update.ETA(),
			}
			if update.Info != nil && update.Info.Title != nil {
				p.Title = *update.Info.Title
			}
			onProgress(p)
		})
	}

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	out := &Result{}
	if result != nil {
		info, err := result.GetExtractedInfo()
		if err == nil && len(info) > 0 && info[0].Filename != nil {
			out.OutputPath = *info[0].Filename
		}
	}
	return out, nil
}

// probeInfo mirrors the subset of yt-dlp JSON output we care about
type probeInfo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	Duration    float64 `json:"duration"`
	ViewCount   int64   `json:"view_count"`
	UploadDate  string  `json:"upload_date"`
	Thumbnail   string  `json:"thumbnail"`
	Description string  `json:"description"`
	WebpageURL  string  `json:"webpage_url"`
	IsLive      bool    `json:"is_live"`
	Formats     []struct {
		FormatID   string  `json:"format_id"`
		Ext        string  `json:"ext"`
		Resolution string  `json:"resolution"`
		Height     int     `json:"height"`
		FPS        float64 `json:"fps"`
		VCodec     string  `json:"vcodec"`
		ACodec     string  `json:"acodec"`
		Filesize   int64   `json:"filesize"`
	} `json:"formats"`
}

// Probe fetches metadata for a URL without downloading
func (e *YTDLPEngine) Probe(ctx context.Context, url string) (*model.VideoInfo, error) {
	dl := ytdlp.New().
		SkipDownload().
		NoWarnings().
		DumpSingleJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to extract info from %s: %w", url, err)
	}

	var raw probeInfo
	if err := json.Unmarshal([]byte(result.Stdout), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse metadata for %s: %w", url, err)
	}

	info := &model.VideoInfo{
		ID:          raw.ID,
		Title:       raw.Title,
		Uploader:    raw.Uploader,
		Duration:    raw.Duration,
		ViewCount:   raw.ViewCount,
		UploadDate:  raw.UploadDate,
		Thumbnail:   raw.Thumbnail,
		Description: raw.Description,
		WebpageURL:  raw.WebpageURL,
		IsLive:      raw.IsLive,
	}

	// cap the format list the way the API has always served it
	const maxFormats = 20
	for i, f := range raw.Formats {
		if i >= maxFormats {
			break
		}
		info.Formats = append(info.Formats, model.FormatInfo{
			FormatID:   f.FormatID,
			Ext:        f.Ext,
			Resolution: f.Resolution,
			Height:     f.Height,
			FPS:        f.FPS,
			VCodec:     f.VCodec,
			ACodec:     f.ACodec,
			Filesize:   f.Filesize,
		})
	}
	return info, nil
}

// Install makes sure a usable yt-dlp binary is present, downloading or
// upgrading it when needed. Returns the resolved executable path.
func Install(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return resolved.Executable, nil
}
