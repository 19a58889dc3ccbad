package extract

// Package extract defines the boundary to the video extraction engine and
// implements it on top of yt-dlp (via github.com/lrstanley/go-ytdlp). The
// rest of the app depends only on the Engine interface; tests substitute
// in-memory fakes.
