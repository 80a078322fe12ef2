package app

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"paramseal/internal/keyfetch"
)

// ConfigFileName is looked up inside Home.
const ConfigFileName = "config.yaml"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home         string        // config directory, e.g. $HOME/.paramseal
	KeyURL       string        // backend base URL serving /api/public_key
	KeyCacheTTL  time.Duration // how long a fetched key is reused
	FetchRetries int           // retries after a failed key fetch
	LogLevel     string
	HTTP         *http.Client // optional; defaults to http.DefaultClient
}

// FileConfig is the on-disk shape of config.yaml. Zero values mean "not set".
type FileConfig struct {
	KeyURL       string        `yaml:"key_url"`
	KeyCacheTTL  time.Duration `yaml:"key_cache_ttl"`
	FetchRetries *int          `yaml:"fetch_retries"`
	LogLevel     string        `yaml:"log_level"`
}

// DefaultConfig returns the built-in settings for home.
func DefaultConfig(home string) Config {
	return Config{
		Home:         home,
		KeyCacheTTL:  keyfetch.DefaultCacheTTL,
		FetchRetries: keyfetch.DefaultRetries,
		LogLevel:     "warning",
	}
}

// DefaultHome is ~/.paramseal.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locate home directory")
	}
	return filepath.Join(dir, ".paramseal"), nil
}

// LoadFile reads path. A missing file returns ok == false and no error.
func LoadFile(path string) (fc FileConfig, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return FileConfig{}, false, nil
	}
	if err != nil {
		return FileConfig{}, false, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return FileConfig{}, false, errors.Wrapf(err, "parse config %s", path)
	}
	return fc, true, nil
}

// Apply overlays the values set in fc onto c.
func (c Config) Apply(fc FileConfig) Config {
	if fc.KeyURL != "" {
		c.KeyURL = fc.KeyURL
	}
	if fc.KeyCacheTTL != 0 {
		c.KeyCacheTTL = fc.KeyCacheTTL
	}
	if fc.FetchRetries != nil {
		c.FetchRetries = *fc.FetchRetries
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return c
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	if c.Home == "" {
		return errors.New("home directory is not set")
	}
	if c.KeyCacheTTL < 0 {
		return errors.Errorf("key_cache_ttl must not be negative, got %s", c.KeyCacheTTL)
	}
	if c.FetchRetries < 0 {
		return errors.Errorf("fetch_retries must not be negative, got %d", c.FetchRetries)
	}
	return nil
}
