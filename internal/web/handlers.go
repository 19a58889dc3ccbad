package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ytget/yt-downloader-web/internal/download"
	"github.com/ytget/yt-downloader-web/internal/format"
	"github.com/ytget/yt-downloader-web/internal/progress"
	"github.com/ytget/yt-downloader-web/internal/store"
)

// Response envelope statuses.
const (
	statusSuccess = "success"
	statusError   = "error"
)

// Handlers binds the HTTP endpoints to the workflow services.
type Handlers struct {
	lister    *format.Lister
	downloads *download.Service
	table     *progress.Table
	records   *store.VideoRecordStore
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(lister *format.Lister, downloads *download.Service, table *progress.Table, records *store.VideoRecordStore) *Handlers {
	return &Handlers{
		lister:    lister,
		downloads: downloads,
		table:     table,
		records:   records,
	}
}

// isYouTubeURL is the validation gate for submitted links.
func isYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}

// Index renders the HTML page listing known video records.
func (h *Handlers) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"videos": h.records.LoadAll(),
	})
}

// VideoFormats handles GET /video-formats/?url=...
func (h *Handlers) VideoFormats(c *gin.Context) {
	url := c.Query("url")
	if !isYouTubeURL(url) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  statusError,
			"message": "Please provide a valid YouTube video link",
		})
		return
	}

	listing, err := h.lister.List(c.Request.Context(), url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  statusError,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"data":   listing,
	})
}

// Download handles POST /download/ with form fields url and format_id.
// The returned video_id is guessed from the URL before true resolution;
// it is the key clients poll progress with.
func (h *Handlers) Download(c *gin.Context) {
	url := c.PostForm("url")
	if !isYouTubeURL(url) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  statusError,
			"message": "Please provide a valid YouTube video link",
		})
		return
	}

	videoID := download.GuessVideoID(url)
	if videoID == download.UnknownVideoID {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  statusError,
			"message": "Could not determine the video ID, please check the link format",
		})
		return
	}

	h.downloads.Enqueue(url, c.PostForm("format_id"), videoID)

	c.JSON(http.StatusOK, gin.H{
		"status":   statusSuccess,
		"message":  "Download started",
		"video_id": videoID,
	})
}

// Progress handles GET /progress/:video_id.
func (h *Handlers) Progress(c *gin.Context) {
	c.JSON(http.StatusOK, h.table.Get(c.Param("video_id")))
}

// Videos handles GET /videos/ with the full ledger as a JSON array.
func (h *Handlers) Videos(c *gin.Context) {
	c.JSON(http.StatusOK, h.records.LoadAll())
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
