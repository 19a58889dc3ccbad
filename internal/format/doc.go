package format

// Package format turns raw engine metadata into the client-facing format
// listing: video-carrying formats only, ranked by vertical resolution.
