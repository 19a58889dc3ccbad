package model

// Package model defines domain data structures used across the app: persisted
// video records, live progress entries, format descriptors, and status enums.
// Structures carry the JSON tags of the ledger and API wire format and are
// designed for direct encoding in handlers and explicit state transitions.
