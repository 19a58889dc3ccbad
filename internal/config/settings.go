package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Defaults applied when neither config file nor environment say otherwise.
const (
	DefaultAddr          = ":8000"
	DefaultDownloadDir   = "downloads"
	DefaultStaticDir     = "static"
	DefaultTemplatesGlob = "templates/*.html"
	DefaultLedgerPath    = "videos_info.json"
	DefaultMaxParallel   = 2
	DefaultProgressTTL   = time.Hour
	DefaultLogLevel      = "info"
)

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig
	Downloads DownloadsConfig
	Log       LogConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr          string
	StaticDir     string
	TemplatesGlob string
}

// DownloadsConfig configures the download workflow.
type DownloadsConfig struct {
	Dir         string
	LedgerPath  string
	MaxParallel int
	ProgressTTL time.Duration
}

// LogConfig configures logging.
type LogConfig struct {
	Level string
}

// Load reads configuration from an optional YAML file, environment
// variables, and defaults. An empty path means "defaults plus environment".
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.static_dir", DefaultStaticDir)
	v.SetDefault("server.templates_glob", DefaultTemplatesGlob)
	v.SetDefault("downloads.dir", DefaultDownloadDir)
	v.SetDefault("downloads.ledger_path", DefaultLedgerPath)
	v.SetDefault("downloads.max_parallel", DefaultMaxParallel)
	v.SetDefault("downloads.progress_ttl", DefaultProgressTTL)
	v.SetDefault("log.level", DefaultLogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:          v.GetString("server.addr"),
			StaticDir:     v.GetString("server.static_dir"),
			TemplatesGlob: v.GetString("server.templates_glob"),
		},
		Downloads: DownloadsConfig{
			Dir:         v.GetString("downloads.dir"),
			LedgerPath:  v.GetString("downloads.ledger_path"),
			MaxParallel: v.GetInt("downloads.max_parallel"),
			ProgressTTL: v.GetDuration("downloads.progress_ttl"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	// Environment overrides, matching how the service is deployed.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if dir := os.Getenv("DOWNLOAD_DIR"); dir != "" {
		cfg.Downloads.Dir = dir
	}
	if ledger := os.Getenv("LEDGER_PATH"); ledger != "" {
		cfg.Downloads.LedgerPath = ledger
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// ProxyFromEnv returns the proxy to pass to the extraction engine, if any.
// HTTP_PROXY takes precedence over HTTPS_PROXY.
func ProxyFromEnv() string {
	if proxy := os.Getenv("HTTP_PROXY"); proxy != "" {
		return proxy
	}
	return os.Getenv("HTTPS_PROXY")
}
