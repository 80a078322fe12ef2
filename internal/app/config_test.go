package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramseal/internal/app"
	"paramseal/internal/keyfetch"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), app.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
key_url: https://striv.example.com
key_cache_ttl: 5m
fetch_retries: 0
log_level: debug
`), 0o600))

	fc, ok, err := app.LoadFile(path)
	require.NoError(t, err)
	require.True(t, ok)

	cfg := app.DefaultConfig("/tmp/home").Apply(fc)
	assert.Equal(t, "https://striv.example.com", cfg.KeyURL)
	assert.Equal(t, 5*time.Minute, cfg.KeyCacheTTL)
	assert.Equal(t, 0, cfg.FetchRetries, "an explicit zero must override the default")
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_Missing(t *testing.T) {
	_, ok, err := app.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadFile_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), app.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("key_ulr: typo\n"), 0o600))

	_, _, err := app.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestApply_KeepsDefaults(t *testing.T) {
	cfg := app.DefaultConfig("/tmp/home").Apply(app.FileConfig{})
	assert.Equal(t, keyfetch.DefaultCacheTTL, cfg.KeyCacheTTL)
	assert.Equal(t, keyfetch.DefaultRetries, cfg.FetchRetries)
	assert.Equal(t, "warning", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	assert.Error(t, app.Config{}.Validate())

	cfg := app.DefaultConfig("/tmp/home")
	cfg.FetchRetries = -1
	assert.Error(t, cfg.Validate())

	cfg = app.DefaultConfig("/tmp/home")
	cfg.KeyCacheTTL = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestNewWire(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")

	w, err := app.NewWire(app.DefaultConfig(home))
	require.NoError(t, err)
	assert.Nil(t, w.Fetcher)
	assert.NotNil(t, w.Keys)
	assert.DirExists(t, home)

	cfg := app.DefaultConfig(home)
	cfg.KeyURL = "http://127.0.0.1:1"
	w, err = app.NewWire(cfg)
	require.NoError(t, err)
	assert.NotNil(t, w.Fetcher)
	assert.NotNil(t, w.SealService(w.Fetcher))
}
