package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-downloader-web/internal/extract"
	"github.com/ytget/yt-downloader-web/internal/model"
	"github.com/ytget/yt-downloader-web/internal/progress"
	"github.com/ytget/yt-downloader-web/internal/store"
)

// fakeEngine scripts probe/download outcomes and replays progress ticks.
type fakeEngine struct {
	info        *extract.Info
	probeErr    error
	downloadErr error
	ticks       []extract.Progress
	writeFile   bool
	dir         string
	content     []byte
}

func (f *fakeEngine) Probe(ctx context.Context, url string) (*extract.Info, error) {
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return f.info, nil
}

func (f *fakeEngine) Download(ctx context.Context, req extract.Request, onProgress extract.ProgressFunc) (*extract.Info, error) {
	for _, tick := range f.ticks {
		onProgress(tick)
	}
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	if f.writeFile {
		name := f.info.Title + "-" + f.info.ID + "." + f.info.Ext
		if err := os.WriteFile(filepath.Join(f.dir, name), f.content, 0644); err != nil {
			return nil, err
		}
	}
	return f.info, nil
}

func testInfo() *extract.Info {
	return &extract.Info{
		ID:          "ABC123",
		Title:       "Some Video",
		Ext:         "mp4",
		Duration:    213,
		Uploader:    "Some Channel",
		Description: "about things",
		Thumbnail:   "https://i.ytimg.com/vi/ABC123/hq720.jpg",
	}
}

func newTestService(t *testing.T, engine *fakeEngine) (*Service, *progress.Table, *store.VideoRecordStore) {
	t.Helper()
	dir := t.TempDir()
	engine.dir = dir
	table := progress.NewTable(0)
	records := store.NewVideoRecordStore(filepath.Join(dir, "videos_info.json"))
	return NewService(engine, table, records, dir, 2), table, records
}

func TestService_Run_Success(t *testing.T) {
	engine := &fakeEngine{
		info:      testInfo(),
		writeFile: true,
		content:   make([]byte, 2*1024*1024),
		ticks: []extract.Progress{
			{Status: model.StatusDownloading, DownloadedBytes: 50, TotalBytes: 100, Speed: 1024, ETASec: 3},
			{Status: model.StatusDownloading, DownloadedBytes: 100, TotalBytes: 100},
			{Status: model.StatusFinished},
		},
	}
	svc, table, records := newTestService(t, engine)

	svc.run(context.Background(), "https://www.youtube.com/watch?v=ABC123", "", "ABC123")

	entry := table.Get("ABC123")
	assert.Equal(t, model.StatusFinished, entry.Status)
	assert.Equal(t, 100.0, entry.Progress)

	recs := records.LoadAll()
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, "ABC123", rec.ID)
	assert.Equal(t, "Some Video", rec.Title)
	assert.Equal(t, 213, rec.Duration)
	assert.Equal(t, "Some Channel", rec.Author)
	assert.Equal(t, "2.00 MB", rec.FileSize)
	assert.Equal(t, "/downloads/Some Video-ABC123.mp4", rec.FilePath)
	assert.NotEmpty(t, rec.DownloadDate)
}

func TestService_Run_ProgressTicks(t *testing.T) {
	var seen []float64
	engine := &fakeEngine{info: testInfo(), writeFile: true, content: []byte("x")}
	svc, table, _ := newTestService(t, engine)

	for _, tick := range []extract.Progress{
		{Status: model.StatusDownloading, DownloadedBytes: 50, TotalBytes: 100},
		{Status: model.StatusDownloading, DownloadedBytes: 100, TotalBytes: 100},
	} {
		svc.onProgress("ABC123", tick)
		seen = append(seen, table.Get("ABC123").Progress)
	}

	assert.Equal(t, []float64{50.0, 100.0}, seen)
	assert.Equal(t, model.StatusDownloading, table.Get("ABC123").Status)
}

func TestService_Run_UnknownTotalHoldsLastValue(t *testing.T) {
	engine := &fakeEngine{info: testInfo()}
	svc, table, _ := newTestService(t, engine)

	svc.onProgress("ABC123", extract.Progress{Status: model.StatusDownloading, DownloadedBytes: 30, TotalBytes: 100})
	svc.onProgress("ABC123", extract.Progress{Status: model.StatusDownloading, DownloadedBytes: 60, TotalBytes: 0})

	entry := table.Get("ABC123")
	assert.Equal(t, 30.0, entry.Progress)
}

func TestService_Run_AliasesGuessedID(t *testing.T) {
	info := testInfo()
	info.ID = "TRUE_ID" // engine resolves a different id than the URL guess
	engine := &fakeEngine{info: info, writeFile: true, content: []byte("x")}
	svc, table, _ := newTestService(t, engine)

	svc.run(context.Background(), "https://www.youtube.com/watch?v=GUESSED", "", "GUESSED")

	assert.Equal(t, model.StatusFinished, table.Get("TRUE_ID").Status)
	assert.Equal(t, model.StatusFinished, table.Get("GUESSED").Status)
}

func TestService_Run_ProbeError(t *testing.T) {
	engine := &fakeEngine{probeErr: errors.New("HTTP Error 429: Too Many Requests")}
	svc, table, records := newTestService(t, engine)

	svc.run(context.Background(), "https://www.youtube.com/watch?v=ABC123", "", "ABC123")

	entry := table.Get("ABC123")
	assert.Equal(t, model.StatusError, entry.Status)
	assert.Equal(t, 0.0, entry.Progress)
	assert.Equal(t, "YouTube is rate limiting requests. Please try again later.", entry.Error)
	assert.Contains(t, entry.OriginalError, "HTTP Error 429")
	assert.Empty(t, records.LoadAll())
}

func TestService_Run_DownloadError(t *testing.T) {
	engine := &fakeEngine{info: testInfo(), downloadErr: errors.New("Video unavailable")}
	svc, table, records := newTestService(t, engine)

	svc.run(context.Background(), "https://www.youtube.com/watch?v=ABC123", "", "ABC123")

	entry := table.Get("ABC123")
	assert.Equal(t, model.StatusError, entry.Status)
	assert.Equal(t, "The video is unavailable. It may have been deleted or made private by the uploader.", entry.Error)
	assert.Equal(t, "Video unavailable", entry.OriginalError)
	assert.Empty(t, records.LoadAll())
}

func TestService_Run_RedownloadReplacesRecord(t *testing.T) {
	engine := &fakeEngine{info: testInfo(), writeFile: true, content: []byte("x")}
	svc, _, records := newTestService(t, engine)

	svc.run(context.Background(), "https://www.youtube.com/watch?v=ABC123", "", "ABC123")

	engine.info = testInfo()
	engine.info.Title = "Renamed Video"
	svc.run(context.Background(), "https://www.youtube.com/watch?v=ABC123", "", "ABC123")

	recs := records.LoadAll()
	require.Len(t, recs, 1)
	assert.Equal(t, "Renamed Video", recs[0].Title)
}

func TestService_Enqueue_SeedsQueuedEntry(t *testing.T) {
	// Probe blocks until released so the queued state stays observable.
	release := make(chan struct{})
	engine := &blockingEngine{release: release}
	dir := t.TempDir()
	table := progress.NewTable(0)
	records := store.NewVideoRecordStore(filepath.Join(dir, "videos_info.json"))
	svc := NewService(engine, table, records, dir, 1)

	svc.Enqueue("https://www.youtube.com/watch?v=ABC123", "", "ABC123")

	assert.Equal(t, model.StatusQueued, table.Get("ABC123").Status)
	close(release)
}

type blockingEngine struct {
	release chan struct{}
}

func (b *blockingEngine) Probe(ctx context.Context, url string) (*extract.Info, error) {
	<-b.release
	return nil, errors.New("released")
}

func (b *blockingEngine) Download(ctx context.Context, req extract.Request, onProgress extract.ProgressFunc) (*extract.Info, error) {
	return nil, errors.New("not implemented")
}
