package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-downloader-web/internal/model"
)

// Engine tuning. Socket timeouts are per network operation, not an overall
// deadline; retry sleep grows linearly: 5s, 10s, 15s, ...
const (
	DefaultSocketTimeout = 60 * time.Second
	ProxySocketTimeout   = 120 * time.Second

	downloadRetries  = "10"
	retrySleepPolicy = "linear=5::5"

	// OutputTemplate names downloaded files "{title}-{id}.{ext}".
	OutputTemplate = "%(title)s-%(id)s.%(ext)s"

	progressInterval = 500 * time.Millisecond
)

// FormatBest is the selector used when no format id was requested.
const FormatBest = "best"

// YTDLPEngine implements Engine with the yt-dlp binary.
type YTDLPEngine struct {
	downloadDir   string
	proxy         string
	socketTimeout time.Duration
}

var _ Engine = (*YTDLPEngine)(nil)

// NewYTDLPEngine creates the production engine. A non-empty proxy is passed
// through to yt-dlp and raises the socket timeout.
func NewYTDLPEngine(downloadDir, proxy string) *YTDLPEngine {
	timeout := DefaultSocketTimeout
	if proxy != "" {
		timeout = ProxySocketTimeout
	}
	return &YTDLPEngine{
		downloadDir:   downloadDir,
		proxy:         proxy,
		socketTimeout: timeout,
	}
}

// Install ensures the yt-dlp binary is available, downloading it if needed.
// Panics on failure; call once at startup.
func Install(ctx context.Context) {
	ytdlp.MustInstall(ctx, nil)
}

// base returns a command with the options shared by probe and download runs.
func (e *YTDLPEngine) base() *ytdlp.Command {
	dl := ytdlp.New().
		NoWarnings().
		NoPlaylist().
		SocketTimeout(e.socketTimeout.Seconds()).
		Retries(downloadRetries).
		RetrySleep(retrySleepPolicy)

	if e.proxy != "" {
		dl = dl.Proxy(e.proxy)
	}
	return dl
}

// Probe resolves metadata in metadata-only mode.
func (e *YTDLPEngine) Probe(ctx context.Context, url string) (*Info, error) {
	dl := e.base().
		SkipDownload().
		DumpJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("probe failed: %w", err)
	}

	info, err := firstExtractedInfo(result)
	if err != nil {
		return nil, err
	}
	return convertInfo(info), nil
}

// Download runs the download with a progress hook.
func (e *YTDLPEngine) Download(ctx context.Context, req Request, onProgress ProgressFunc) (*Info, error) {
	formatID := req.FormatID
	if formatID == "" {
		formatID = FormatBest
	}

	dl := e.base().
		ForceOverwrites().
		Format(formatID).
		Output(filepath.Join(e.downloadDir, OutputTemplate))

	dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		if onProgress == nil {
			return
		}
		tick, ok := convertProgress(update)
		if ok {
			onProgress(tick)
		}
	})

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	info, err := firstExtractedInfo(result)
	if err != nil {
		// The media is on disk; metadata comes from the caller's probe.
		return nil, nil
	}
	return convertInfo(info), nil
}

// firstExtractedInfo pulls the first info object out of a run result.
func firstExtractedInfo(result *ytdlp.Result) (*ytdlp.ExtractedInfo, error) {
	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to parse extracted info: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("engine returned no video info")
	}
	return infos[0], nil
}

// convertInfo maps engine metadata onto the domain Info.
func convertInfo(info *ytdlp.ExtractedInfo) *Info {
	out := &Info{
		ID:          info.ID,
		Title:       strOr(info.Title, "Unknown"),
		Ext:         strOr(&info.Extension, "mp4"),
		Uploader:    strOr(info.Uploader, "Unknown"),
		Description: strOr(info.Description, ""),
		Thumbnail:   strOr(info.Thumbnail, ""),
	}
	if info.Duration != nil {
		out.Duration = int(*info.Duration)
	}

	for _, f := range info.Formats {
		if f == nil {
			continue
		}
		out.Formats = append(out.Formats, model.FormatDescriptor{
			FormatID:   strOr(f.FormatID, ""),
			Resolution: strOr(f.Resolution, model.ResolutionUnknown),
			Ext:        strOr(f.Extension, "mp4"),
			FPS:        f64Or(f.FPS, 0),
			Filesize:   int64(intOr(f.FileSize, 0)),
			FormatNote: strOr(f.FormatNote, ""),
			VCodec:     strOr(f.VCodec, ""),
		})
	}
	return out
}

// convertProgress maps an engine tick onto the domain Progress. Ticks other
// than downloading/finished (pre/post-processing) are dropped.
func convertProgress(update ytdlp.ProgressUpdate) (Progress, bool) {
	var status model.Status
	switch update.Status {
	case ytdlp.ProgressStatusDownloading:
		status = model.StatusDownloading
	case ytdlp.ProgressStatusFinished:
		status = model.StatusFinished
	default:
		return Progress{}, false
	}

	tick := Progress{
		Status:          status,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			tick.Speed = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}
	if eta := update.ETA(); eta > 0 {
		tick.ETASec = int(eta.Seconds())
	}
	return tick, true
}

func strOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

func f64Or(f *float64, fallback float64) float64 {
	if f != nil {
		return *f
	}
	return fallback
}

func intOr(i *int, fallback int) int {
	if i != nil {
		return *i
	}
	return fallback
}
