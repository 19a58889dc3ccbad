package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultDownloadDir, cfg.Downloads.Dir)
	assert.Equal(t, DefaultLedgerPath, cfg.Downloads.LedgerPath)
	assert.Equal(t, DefaultMaxParallel, cfg.Downloads.MaxParallel)
	assert.Equal(t, DefaultProgressTTL, cfg.Downloads.ProgressTTL)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9000"
downloads:
  dir: /data/downloads
  max_parallel: 4
  progress_ttl: 30m
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "/data/downloads", cfg.Downloads.Dir)
	assert.Equal(t, 4, cfg.Downloads.MaxParallel)
	assert.Equal(t, 30*time.Minute, cfg.Downloads.ProgressTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultLedgerPath, cfg.Downloads.LedgerPath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8123")
	t.Setenv("DOWNLOAD_DIR", "/tmp/dls")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8123", cfg.Server.Addr)
	assert.Equal(t, "/tmp/dls", cfg.Downloads.Dir)
}

func TestProxyFromEnv(t *testing.T) {
	t.Setenv("HTTP_PROXY", "")
	t.Setenv("HTTPS_PROXY", "")
	assert.Empty(t, ProxyFromEnv())

	t.Setenv("HTTPS_PROXY", "http://proxy:3129")
	assert.Equal(t, "http://proxy:3129", ProxyFromEnv())

	t.Setenv("HTTP_PROXY", "http://proxy:3128")
	assert.Equal(t, "http://proxy:3128", ProxyFromEnv())
}
