package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/yt-downloader-web/internal/model"
)

func TestTable_SetGet(t *testing.T) {
	table := NewTable(0)

	table.Set("ABC123", model.ProgressEntry{Status: model.StatusQueued})
	entry := table.Get("ABC123")
	assert.Equal(t, model.StatusQueued, entry.Status)

	table.Set("ABC123", model.ProgressEntry{Status: model.StatusDownloading, Progress: 50})
	entry = table.Get("ABC123")
	assert.Equal(t, model.StatusDownloading, entry.Status)
	assert.Equal(t, 50.0, entry.Progress)
}

func TestTable_Get_Unknown(t *testing.T) {
	table := NewTable(0)
	entry := table.Get("nope")
	assert.Equal(t, model.StatusNotFound, entry.Status)
}

func TestTable_Alias(t *testing.T) {
	table := NewTable(0)

	// Request accepted under the URL-guessed id.
	table.Set("guess", model.ProgressEntry{Status: model.StatusQueued})

	// Worker resolves the true id and links the two.
	table.Alias("guess", "resolved")
	table.Set("resolved", model.ProgressEntry{Status: model.StatusDownloading, Progress: 42})

	for _, id := range []string{"guess", "resolved"} {
		entry := table.Get(id)
		assert.Equal(t, model.StatusDownloading, entry.Status, "id %s", id)
		assert.Equal(t, 42.0, entry.Progress, "id %s", id)
	}
	assert.Equal(t, 1, table.Len())
}

func TestTable_Alias_SameID(t *testing.T) {
	table := NewTable(0)
	table.Set("same", model.ProgressEntry{Status: model.StatusStarting})
	table.Alias("same", "same")
	assert.Equal(t, model.StatusStarting, table.Get("same").Status)
}

func TestTable_Sweep_RemovesExpiredTerminalOnly(t *testing.T) {
	table := NewTable(time.Minute)

	table.Set("done", model.ProgressEntry{Status: model.StatusFinished, Progress: 100})
	table.Set("failed", model.ProgressEntry{Status: model.StatusError})
	table.Set("live", model.ProgressEntry{Status: model.StatusDownloading, Progress: 10})

	// Nothing has expired yet.
	assert.Equal(t, 0, table.sweep(time.Now()))
	assert.Equal(t, 3, table.Len())

	// Jump past the TTL: terminal entries go, the live one stays.
	removed := table.sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 2, removed)
	assert.Equal(t, model.StatusNotFound, table.Get("done").Status)
	assert.Equal(t, model.StatusNotFound, table.Get("failed").Status)
	assert.Equal(t, model.StatusDownloading, table.Get("live").Status)
}

func TestTable_Sweep_DropsDanglingAliases(t *testing.T) {
	table := NewTable(time.Minute)

	table.Set("guess", model.ProgressEntry{Status: model.StatusQueued})
	table.Alias("guess", "resolved")
	table.Set("resolved", model.ProgressEntry{Status: model.StatusFinished, Progress: 100})

	table.sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, model.StatusNotFound, table.Get("guess").Status)
	assert.Equal(t, 0, table.Len())
}
