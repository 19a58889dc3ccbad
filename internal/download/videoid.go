package download

import "strings"

// UnknownVideoID is returned when no identifier can be guessed from a URL.
const UnknownVideoID = "unknown"

// GuessVideoID extracts a best-effort video identifier from a raw URL,
// before (or without) the engine resolving the true id. For youtube.com
// URLs it is the substring after "v=" up to the next "&"; for youtu.be it
// is the last path segment up to "?".
func GuessVideoID(url string) string {
	switch {
	case strings.Contains(url, "youtube.com") && strings.Contains(url, "v="):
		id := url[strings.LastIndex(url, "v=")+len("v="):]
		if amp := strings.IndexByte(id, '&'); amp >= 0 {
			id = id[:amp]
		}
		return id
	case strings.Contains(url, "youtu.be"):
		id := url[strings.LastIndexByte(url, '/')+1:]
		if q := strings.IndexByte(id, '?'); q >= 0 {
			id = id[:q]
		}
		return id
	default:
		return UnknownVideoID
	}
}
