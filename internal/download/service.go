package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-web/internal/extract"
	"github.com/ytget/yt-downloader-web/internal/model"
	"github.com/ytget/yt-downloader-web/internal/platform"
	"github.com/ytget/yt-downloader-web/internal/progress"
	"github.com/ytget/yt-downloader-web/internal/store"
)

// DownloadsURLPrefix is the server-relative prefix recorded as the file path
// of completed downloads.
const DownloadsURLPrefix = "/downloads/"

// Service runs downloads as background units of work. Each download resolves
// metadata, transfers the media with progress propagated to the shared
// table, and on success appends a record to the ledger. Failures are
// classified and recorded in the table; nothing propagates to the request
// that triggered the download.
type Service struct {
	engine      extract.Engine
	table       *progress.Table
	records     *store.VideoRecordStore
	downloadDir string
	sem         chan struct{} // bounds concurrently running downloads
}

// NewService creates a download service. maxParallel bounds how many
// downloads run at once; queued work waits for a slot.
func NewService(engine extract.Engine, table *progress.Table, records *store.VideoRecordStore, downloadDir string, maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		engine:      engine,
		table:       table,
		records:     records,
		downloadDir: downloadDir,
		sem:         make(chan struct{}, maxParallel),
	}
}

// Enqueue accepts a download request keyed by the URL-guessed id and
// dispatches it to the background. It returns immediately.
func (s *Service) Enqueue(url, formatID, guessID string) {
	s.table.Set(guessID, model.ProgressEntry{Status: model.StatusQueued})

	go func() {
		s.sem <- struct{}{}
		defer func() { <-s.sem }()

		s.run(context.Background(), url, formatID, guessID)
	}()
}

// run drives one download to completion or failure.
func (s *Service) run(ctx context.Context, url, formatID, guessID string) {
	info, err := s.engine.Probe(ctx, url)
	if err != nil {
		s.fail(url, err)
		return
	}

	// The engine-resolved id is authoritative; link the preliminary guess
	// so clients polling it keep seeing this download.
	id := info.ID
	s.table.Alias(guessID, id)
	s.table.Set(id, model.ProgressEntry{Status: model.StatusStarting, Progress: 0})

	req := extract.Request{URL: url, FormatID: formatID}
	if _, err := s.engine.Download(ctx, req, func(p extract.Progress) {
		s.onProgress(id, p)
	}); err != nil {
		s.fail(url, err)
		return
	}

	rec := s.buildRecord(info)
	if err := s.records.Upsert(rec); err != nil {
		s.fail(url, err)
		return
	}

	s.table.Set(id, model.ProgressEntry{Status: model.StatusFinished, Progress: 100})
	log.WithFields(log.Fields{"id": id, "title": info.Title}).Info("Download completed")
}

// onProgress propagates one engine tick to the table. Downloading ticks
// without a known total are skipped, so progress holds its last value.
// An engine "finished" tick means the byte transfer is complete; the record
// is persisted right after.
func (s *Service) onProgress(id string, p extract.Progress) {
	switch p.Status {
	case model.StatusDownloading:
		if p.TotalBytes <= 0 {
			return
		}
		pct := model.RoundProgress(float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100)
		s.table.Set(id, model.ProgressEntry{
			Status:   model.StatusDownloading,
			Progress: pct,
			Speed:    p.Speed,
			ETA:      p.ETASec,
		})
	case model.StatusFinished:
		s.table.Set(id, model.ProgressEntry{Status: model.StatusFinished, Progress: 100})
	}
}

// buildRecord assembles the ledger record for a completed download.
func (s *Service) buildRecord(info *extract.Info) model.VideoRecord {
	filename := fmt.Sprintf("%s-%s.%s", info.Title, info.ID, info.Ext)

	var size int64
	if fi, err := os.Stat(filepath.Join(s.downloadDir, filename)); err == nil {
		size = fi.Size()
	} else {
		log.WithError(err).Warnf("Failed to stat downloaded file %s", filename)
	}

	return model.VideoRecord{
		ID:           info.ID,
		Title:        info.Title,
		Duration:     info.Duration,
		Author:       info.Uploader,
		Description:  model.TruncateDescription(info.Description),
		FileSize:     platform.FormatFileSize(size),
		FilePath:     DownloadsURLPrefix + filename,
		Thumbnail:    info.Thumbnail,
		DownloadDate: time.Now().Format(model.DownloadDateLayout),
	}
}

// fail records a classified failure under the best id still available: the
// one guessed from the original URL, which the alias map links to the
// resolved id when metadata resolution got that far.
func (s *Service) fail(url string, err error) {
	raw := err.Error()
	id := GuessVideoID(url)

	s.table.Set(id, model.ProgressEntry{
		Status:        model.StatusError,
		Progress:      0,
		Error:         ClassifyError(raw),
		OriginalError: raw,
	})
	log.WithError(err).Errorf("Download failed for %s", url)
}
