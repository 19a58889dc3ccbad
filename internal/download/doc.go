package download

// Package download implements the core download pipeline built on top of the
// extraction engine. It runs each download as a background unit of work
// behind a parallelism gate, propagates progress to the shared table,
// classifies failures into user-facing messages, and records completed
// downloads in the ledger.
