package model

import (
	"math"
	"time"
)

// ProgressEntry represents the live state of one in-flight or recently
// finished/failed download. Entries are keyed by video identifier in the
// progress table and are not persisted.
type ProgressEntry struct {
	Status        Status  `json:"status"`
	Progress      float64 `json:"progress"` // 0..100, two decimals
	Speed         float64 `json:"speed,omitempty"`
	ETA           int     `json:"eta,omitempty"` // seconds
	Error         string  `json:"error,omitempty"`
	OriginalError string  `json:"original_error,omitempty"`

	// UpdatedAt drives eviction of terminal entries. Not exposed to clients.
	UpdatedAt time.Time `json:"-"`
}

// NotFoundEntry is the sentinel returned when no entry exists for an id.
func NotFoundEntry() ProgressEntry {
	return ProgressEntry{Status: StatusNotFound}
}

// RoundProgress rounds a 0..100 percentage to two decimal places.
func RoundProgress(p float64) float64 {
	return math.Round(p*100) / 100
}
