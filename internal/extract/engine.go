package extract

import (
	"context"

	"github.com/ytget/yt-downloader-web/internal/model"
)

// Info is the metadata the engine reports for a single video.
type Info struct {
	ID          string
	Title       string
	Ext         string
	Duration    int // seconds
	Uploader    string
	Description string
	Thumbnail   string
	Formats     []model.FormatDescriptor
}

// Progress is one tick of download progress reported by the engine.
type Progress struct {
	Status          model.Status // downloading or finished
	DownloadedBytes int64
	TotalBytes      int64 // 0 if unknown
	Speed           float64
	ETASec          int
}

// Request describes one download to run.
type Request struct {
	URL      string
	FormatID string // empty means "best"
}

// ProgressFunc receives progress ticks during a download.
type ProgressFunc func(Progress)

// Engine is the opaque extraction capability: given a URL it returns video
// metadata, and given a format selection it writes a media file to the
// download directory.
type Engine interface {
	// Probe resolves metadata without fetching any media.
	Probe(ctx context.Context, url string) (*Info, error)

	// Download runs the download to completion, invoking onProgress on every
	// engine tick. The returned Info may be nil if the engine produced no
	// parseable metadata; callers fall back to the Probe result.
	Download(ctx context.Context, req Request, onProgress ProgressFunc) (*Info, error)
}
