package progress

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-web/internal/model"
)

// Default retention of terminal entries and sweep cadence.
const (
	DefaultTTL           = time.Hour
	DefaultSweepInterval = time.Minute
)

// Table is the process-wide map from video identifier to download progress.
// All access goes through the accessor methods; terminal entries are swept
// after a TTL so the table stays bounded over long uptimes.
//
// A download request is keyed by an identifier guessed from the URL before
// the engine resolves the true video id. Alias links the guess to the
// resolved id so clients polling either key observe the same entry.
type Table struct {
	mu      sync.RWMutex
	entries map[string]model.ProgressEntry
	aliases map[string]string

	ttl           time.Duration
	sweepInterval time.Duration
}

// NewTable creates an empty progress table. A non-positive ttl falls back to
// DefaultTTL.
func NewTable(ttl time.Duration) *Table {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Table{
		entries:       make(map[string]model.ProgressEntry),
		aliases:       make(map[string]string),
		ttl:           ttl,
		sweepInterval: DefaultSweepInterval,
	}
}

// Set stores the entry for id, overwriting any previous state.
func (t *Table) Set(id string, entry model.ProgressEntry) {
	entry.UpdatedAt = time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[t.resolve(id)] = entry
}

// Get returns the entry for id, following aliases. Unknown ids yield the
// not_found sentinel.
func (t *Table) Get(id string) model.ProgressEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if entry, ok := t.entries[t.resolve(id)]; ok {
		return entry
	}
	return model.NotFoundEntry()
}

// Alias links a preliminary URL-guessed id to the engine-resolved id. Any
// state already stored under the guess moves to the resolved id.
func (t *Table) Alias(guessID, resolvedID string) {
	if guessID == resolvedID || guessID == "" || resolvedID == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.entries[guessID]; ok {
		if _, exists := t.entries[resolvedID]; !exists {
			t.entries[resolvedID] = entry
		}
		delete(t.entries, guessID)
	}
	t.aliases[guessID] = resolvedID
}

// Len returns the number of stored entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// StartJanitor launches the background sweep of expired terminal entries.
// It returns immediately; the janitor stops when ctx is cancelled.
func (t *Table) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(t.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := t.sweep(time.Now()); n > 0 {
					log.Debugf("Swept %d expired progress entries", n)
				}
			}
		}
	}()
}

// sweep removes terminal entries whose last update is older than the TTL,
// along with aliases pointing at removed ids. Live entries are never evicted.
func (t *Table) sweep(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, entry := range t.entries {
		if entry.Status.IsTerminal() && now.Sub(entry.UpdatedAt) > t.ttl {
			delete(t.entries, id)
			removed++
		}
	}
	for guess, resolved := range t.aliases {
		if _, ok := t.entries[resolved]; !ok {
			delete(t.aliases, guess)
		}
	}
	return removed
}

// resolve follows the alias chain one hop. Callers must hold the lock.
func (t *Table) resolve(id string) string {
	if target, ok := t.aliases[id]; ok {
		return target
	}
	return id
}
