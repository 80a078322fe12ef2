package app

import (
	"net/http"
	"os"

	"github.com/pkg/errors"

	"paramseal/internal/domain"
	"paramseal/internal/envelope"
	"paramseal/internal/keyfetch"
	"paramseal/internal/logs"
	"paramseal/internal/services/keys"
	"paramseal/internal/services/seal"
	"paramseal/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Keys   *keys.Service
	Sealer *envelope.Sealer
	// Fetcher is nil unless a key URL is configured.
	Fetcher *keyfetch.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create %s", cfg.Home)
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	w := &Wire{
		Keys:   keys.New(store.NewKeyFileStore(cfg.Home), nil),
		Sealer: envelope.NewSealer(envelope.WithLogger(logs.For("envelope"))),
	}
	if cfg.KeyURL != "" {
		w.Fetcher = keyfetch.NewClient(cfg.KeyURL,
			keyfetch.WithHTTPClient(httpClient),
			keyfetch.WithLogger(logs.For("keyfetch")),
			keyfetch.WithCacheTTL(cfg.KeyCacheTTL),
			keyfetch.WithRetries(uint64(cfg.FetchRetries), keyfetch.DefaultRetryWait),
		)
	}
	return w, nil
}

// SealService returns a seal service that resolves keys through src.
func (w *Wire) SealService(src domain.KeyFetcher) *seal.Service {
	return seal.New(src, w.Sealer, logs.For("seal"))
}
