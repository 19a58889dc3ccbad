package model

import (
	"strconv"
	"strings"
)

// Resolution sentinels reported by the extraction engine.
const (
	ResolutionUnknown   = "unknown"
	ResolutionAudioOnly = "audio only"
	VCodecNone          = "none"
)

// FormatDescriptor is one selectable encoding of a video as reported by the
// extraction engine. Produced fresh per listing request, never stored.
type FormatDescriptor struct {
	FormatID   string  `json:"format_id"`
	Resolution string  `json:"resolution"` // "WxH", "Np" or "unknown"
	Ext        string  `json:"ext"`
	FPS        float64 `json:"fps"`
	Filesize   int64   `json:"filesize,omitempty"`
	FormatNote string  `json:"format_note"`
	VCodec     string  `json:"vcodec"`
}

// FormatListing is the result of a format discovery request.
type FormatListing struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Formats []FormatDescriptor `json:"formats"`
}

// Height derives the vertical resolution used as the ranking key.
// "WxH" yields H, "Np" yields N, anything unparseable yields 0 so unknown
// resolutions sort last in descending order.
func (f FormatDescriptor) Height() int {
	res := f.Resolution
	if res == "" || res == ResolutionUnknown {
		return 0
	}
	if x := strings.IndexByte(res, 'x'); x >= 0 {
		if h, err := strconv.Atoi(res[x+1:]); err == nil {
			return h
		}
		return 0
	}
	if n, err := strconv.Atoi(strings.TrimSuffix(res, "p")); err == nil {
		return n
	}
	return 0
}
