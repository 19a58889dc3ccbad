package progress

// Package progress holds the in-memory table of per-video download state
// polled by clients. Entries live for the process lifetime only; terminal
// entries are evicted after a TTL by a background janitor.
