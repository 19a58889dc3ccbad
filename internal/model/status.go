package model

// Status represents the lifecycle state of a download as exposed to clients.
type Status string

const (
	// StatusQueued means the download request was accepted but not started
	StatusQueued Status = "queued"

	// StatusStarting means metadata was resolved and the download is about to run
	StatusStarting Status = "starting"

	// StatusDownloading means the byte transfer is in progress
	StatusDownloading Status = "downloading"

	// StatusFinished means the download completed and the record was persisted
	StatusFinished Status = "finished"

	// StatusError means the download failed; the entry carries the error details
	StatusError Status = "error"

	// StatusNotFound is the sentinel returned for unknown video identifiers
	StatusNotFound Status = "not_found"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a final state (finished or error)
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusError
}

// IsActive returns true if the download is still making progress
func (s Status) IsActive() bool {
	return s == StatusQueued || s == StatusStarting || s == StatusDownloading
}
