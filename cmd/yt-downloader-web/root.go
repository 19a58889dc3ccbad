package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-downloader-web/internal/config"
	"github.com/ytget/yt-downloader-web/internal/download"
	"github.com/ytget/yt-downloader-web/internal/extract"
	"github.com/ytget/yt-downloader-web/internal/format"
	"github.com/ytget/yt-downloader-web/internal/platform"
	"github.com/ytget/yt-downloader-web/internal/progress"
	"github.com/ytget/yt-downloader-web/internal/store"
	"github.com/ytget/yt-downloader-web/internal/web"
)

const shutdownTimeout = 10 * time.Second

// cfgFile holds the path to the config file specified by the user
var cfgFile string

// addrFlag holds the value of the --addr flag
var addrFlag string

// downloadDirFlag holds the value of the --download-dir flag
var downloadDirFlag string

// rootCmd runs the web server when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yt-downloader-web",
	Short: "Web front-end for downloading YouTube videos",
	Long: `yt-downloader-web serves a small web UI and JSON API over yt-dlp:
list available formats for a video URL, run downloads in the background,
poll per-video progress, and browse the ledger of completed downloads.`,
	RunE: runServer,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path")
	rootCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (overrides config)")
	rootCmd.Flags().StringVar(&downloadDirFlag, "download-dir", "", "Directory to save videos (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") && addrFlag != "" {
		cfg.Server.Addr = addrFlag
	}
	if cmd.Flags().Changed("download-dir") && downloadDirFlag != "" {
		cfg.Downloads.Dir = downloadDirFlag
	}

	configureLogging(cfg.Log.Level)

	if err := platform.CreateDirectoryIfNotExists(cfg.Downloads.Dir); err != nil {
		return err
	}
	if err := platform.CreateDirectoryIfNotExists(cfg.Server.StaticDir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Ensuring yt-dlp is available")
	extract.Install(ctx)

	proxy := config.ProxyFromEnv()
	if proxy != "" {
		log.Infof("Routing downloads through proxy %s", proxy)
	}
	engine := extract.NewYTDLPEngine(cfg.Downloads.Dir, proxy)

	table := progress.NewTable(cfg.Downloads.ProgressTTL)
	table.StartJanitor(ctx)

	records := store.NewVideoRecordStore(cfg.Downloads.LedgerPath)
	downloads := download.NewService(engine, table, records, cfg.Downloads.Dir, cfg.Downloads.MaxParallel)
	handlers := web.NewHandlers(format.NewLister(engine), downloads, table, records)
	router := web.NewRouter(handlers, web.RouterOptions{
		TemplatesGlob: cfg.Server.TemplatesGlob,
		StaticDir:     cfg.Server.StaticDir,
		DownloadDir:   cfg.Downloads.Dir,
	})

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		log.Infof("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func configureLogging(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if lvl < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
}
