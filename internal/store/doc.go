package store

// Package store persists the ledger of completed downloads as an indented
// JSON array at a single well-known path. Reads are tolerant: missing or
// corrupt files behave as an empty ledger. Writes are serialized and replace
// the file atomically.
