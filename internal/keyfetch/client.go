package keyfetch

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/pmylund/go-cache"
	"github.com/sirupsen/logrus"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
)

const (
	// PublicKeyPath is where the backend serves its key, relative to the base URL.
	PublicKeyPath = "/api/public_key"

	// DefaultCacheTTL is how long a fetched key is reused.
	DefaultCacheTTL = 15 * time.Minute
	// DefaultRetries is the number of retries after the first attempt.
	DefaultRetries = 3
	// DefaultRetryWait is the pause between attempts.
	DefaultRetryWait = time.Second

	cacheKey = "public_key"
)

var _ domain.KeyFetcher = (*Client)(nil)

// Client fetches and caches the backend's public key.
type Client struct {
	base      string
	http      *http.Client
	log       *logrus.Entry
	ttl       time.Duration
	retries   uint64
	retryWait time.Duration

	// mu serialises fetches so concurrent misses hit the backend once.
	mu    sync.Mutex
	cache *cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. The default is http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) { c.log = log }
}

// WithCacheTTL sets how long a fetched key is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithRetries sets how many times a transient failure is retried and the
// pause between attempts.
func WithRetries(n uint64, wait time.Duration) Option {
	return func(c *Client) {
		c.retries = n
		c.retryWait = wait
	}
}

// NewClient returns a Client for the backend at base, e.g. https://striv.example.com.
func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		base:      base,
		http:      http.DefaultClient,
		log:       logrus.NewEntry(logrus.StandardLogger()),
		ttl:       DefaultCacheTTL,
		retries:   DefaultRetries,
		retryWait: DefaultRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = cache.New(c.ttl, 2*c.ttl)
	return c
}

// FetchKey returns the backend's public key, from cache when fresh.
func (c *Client) FetchKey(ctx context.Context) (domain.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl > 0 {
		if v, ok := c.cache.Get(cacheKey); ok {
			key := v.(domain.PublicKey)
			c.log.WithField("key_id", key.ID).Debug("using cached key")
			return key, nil
		}
	}

	var key domain.PublicKey
	op := func() error {
		body, err := c.get(ctx, PublicKeyPath)
		if err != nil {
			return err
		}
		key, err = parseKeyResponse(body)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryWait), c.retries), ctx)
	notify := func(err error, wait time.Duration) {
		c.log.WithError(err).Warnf("failed to fetch public key, will sleep for %s before trying again", wait)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return domain.PublicKey{}, errors.Wrapf(err, "fetch public key from %s", c.base)
	}

	if c.ttl > 0 {
		c.cache.Set(cacheKey, key, c.ttl)
	}
	c.log.WithFields(logrus.Fields{
		"key_id":   key.ID,
		"key_bits": key.Key.N.BitLen(),
	}).Info("fetched public key")
	return key, nil
}

// Invalidate drops the cached key so the next FetchKey goes to the backend.
func (c *Client) Invalidate() {
	c.cache.Delete(cacheKey)
}

type keyResponse struct {
	PublicKey string `json:"public_key"`
	KeyID     string `json:"key_id,omitempty"`
}

// parseKeyResponse accepts the JSON object form or a bare base64 body. Keys
// without an ID are identified by their fingerprint.
func parseKeyResponse(body []byte) (domain.PublicKey, error) {
	body = bytes.TrimSpace(body)
	var resp keyResponse
	switch {
	case len(body) == 0:
		return domain.PublicKey{}, errors.Wrap(domain.ErrInvalidPublicKey, "empty response body")
	case body[0] == '{':
		if err := json.Unmarshal(body, &resp); err != nil {
			return domain.PublicKey{}, errors.Wrapf(domain.ErrInvalidPublicKey, "decode key response: %v", err)
		}
		if resp.PublicKey == "" {
			return domain.PublicKey{}, errors.Wrap(domain.ErrInvalidPublicKey, "response has no public_key")
		}
	case body[0] == '"':
		if err := json.Unmarshal(body, &resp.PublicKey); err != nil {
			return domain.PublicKey{}, errors.Wrapf(domain.ErrInvalidPublicKey, "decode key response: %v", err)
		}
	default:
		resp.PublicKey = string(body)
	}

	pub, err := crypto.ParsePublicKey(resp.PublicKey)
	if err != nil {
		return domain.PublicKey{}, err
	}
	id := strings.TrimSpace(resp.KeyID)
	if id == "" {
		fp, err := crypto.FingerprintPublicKey(pub)
		if err != nil {
			return domain.PublicKey{}, errors.Wrapf(domain.ErrInvalidPublicKey, "fingerprint: %v", err)
		}
		id = fp
	}
	return domain.PublicKey{ID: domain.KeyID(id), Key: pub}, nil
}
