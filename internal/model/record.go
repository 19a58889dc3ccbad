package model

// DownloadDateLayout is the timestamp layout persisted in the ledger.
const DownloadDateLayout = "2006-01-02 15:04:05"

// MaxDescriptionLen caps the description stored per record.
const MaxDescriptionLen = 500

// VideoRecord represents one completed download as persisted in the ledger.
// At most one record exists per video ID; re-downloads replace the old record
// wholesale.
type VideoRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Duration     int    `json:"duration"` // seconds
	Author       string `json:"author"`
	Description  string `json:"description"` // truncated to MaxDescriptionLen
	FileSize     string `json:"file_size"`   // human readable, e.g. "12.34 MB"
	FilePath     string `json:"file_path"`   // server-relative, e.g. "/downloads/x.mp4"
	Thumbnail    string `json:"thumbnail"`
	DownloadDate string `json:"download_date"` // DownloadDateLayout
}

// TruncateDescription shortens a description to the persisted limit.
// Counts runes, not bytes, so multi-byte text is never cut mid-character.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxDescriptionLen {
		return s
	}
	return string(runes[:MaxDescriptionLen])
}
