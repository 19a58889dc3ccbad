package web

import (
	"github.com/gin-gonic/gin"
)

// RouterOptions configures the filesystem mounts of the router.
type RouterOptions struct {
	TemplatesGlob string // empty disables HTML rendering (API only)
	StaticDir     string
	DownloadDir   string
}

// NewRouter assembles the gin engine: middleware, workflow endpoints, and
// static mounts for assets and downloaded media.
func NewRouter(h *Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(CORS())

	if opts.TemplatesGlob != "" {
		router.LoadHTMLGlob(opts.TemplatesGlob)
		router.GET("/", h.Index)
	}

	router.GET("/video-formats/", h.VideoFormats)
	router.POST("/download/", h.Download)
	router.GET("/progress/:video_id", h.Progress)
	router.GET("/videos/", h.Videos)
	router.GET("/health", h.Health)

	if opts.StaticDir != "" {
		router.Static("/static", opts.StaticDir)
	}
	if opts.DownloadDir != "" {
		router.Static("/downloads", opts.DownloadDir)
	}

	return router
}
