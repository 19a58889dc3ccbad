package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-web/internal/model"
)

// File permissions for the ledger file
const ledgerFilePermissions = 0644

// VideoRecordStore is a durable JSON-backed ledger of completed downloads.
// The whole file is rewritten on every upsert; writers are serialized and the
// file is replaced via temp-file + rename so readers never observe a partial
// write.
type VideoRecordStore struct {
	path string
	mu   sync.Mutex
}

// NewVideoRecordStore creates a store persisting to the given file path.
func NewVideoRecordStore(path string) *VideoRecordStore {
	return &VideoRecordStore{path: path}
}

// LoadAll reads the ledger. A missing file yields an empty slice. A
// read or parse failure is logged and treated as "no prior data".
func (s *VideoRecordStore) LoadAll() []model.VideoRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warnf("Failed to read ledger %s", s.path)
		}
		return []model.VideoRecord{}
	}

	var records []model.VideoRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.WithError(err).Warnf("Failed to parse ledger %s", s.path)
		return []model.VideoRecord{}
	}
	return records
}

// Upsert inserts a record, replacing any prior record with the same ID
// (last write wins, no merge).
func (s *VideoRecordStore) Upsert(rec model.VideoRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.LoadAll()
	kept := make([]model.VideoRecord, 0, len(records)+1)
	for _, r := range records {
		if r.ID != rec.ID {
			kept = append(kept, r)
		}
	}
	kept = append(kept, rec)

	return s.writeAll(kept)
}

// writeAll rewrites the ledger atomically: marshal, write to a temp file in
// the same directory, then rename over the target.
func (s *VideoRecordStore) writeAll(records []model.VideoRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp ledger file: %w", err)
	}
	if err := os.Chmod(tmpName, ledgerFilePermissions); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp ledger file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
