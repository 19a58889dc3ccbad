package platform

import (
	"fmt"
	"os"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

const bytesPerMB = 1024 * 1024

// CreateDirectoryIfNotExists ensures the directory exists, creating parents
// as needed.
func CreateDirectoryIfNotExists(dir string) error {
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FormatFileSize renders a byte count as the ledger's human-readable label,
// e.g. "12.34 MB".
func FormatFileSize(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/bytesPerMB)
}
