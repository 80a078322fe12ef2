package keyfetch

import (
	"context"
	"crypto/rsa"

	"github.com/pkg/errors"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
)

var _ domain.KeyFetcher = (*FakeClient)(nil)

// FakeClient is a fake implementation of the key fetcher for testing.
// It can be configured to return specific keys or errors for testing different scenarios.
type FakeClient struct {
	// Key is the public key that will be returned by FetchKey.
	// If nil, a random key will be generated on the first call.
	Key *domain.PublicKey

	// Err is the error that will be returned by FetchKey.
	// If both Key and Err are set, Err takes precedence.
	Err error

	// FetchKeyCalls tracks how many times FetchKey was called
	FetchKeyCalls int
}

// NewFakeClient creates a new fake client for testing.
func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

// NewFakeClientWithKey creates a new fake client that returns the specified key.
func NewFakeClientWithKey(keyID string, key *rsa.PublicKey) *FakeClient {
	return &FakeClient{
		Key: &domain.PublicKey{
			ID:  domain.KeyID(keyID),
			Key: key,
		},
	}
}

// NewFakeClientWithError creates a new fake client that returns the specified error.
func NewFakeClientWithError(err error) *FakeClient {
	return &FakeClient{
		Err: err,
	}
}

// FetchKey returns the configured key or error, or generates a random key if
// none is configured.
func (f *FakeClient) FetchKey(ctx context.Context) (domain.PublicKey, error) {
	f.FetchKeyCalls++

	if ctx.Err() != nil {
		return domain.PublicKey{}, ctx.Err()
	}
	if f.Err != nil {
		return domain.PublicKey{}, f.Err
	}
	if f.Key != nil {
		return *f.Key, nil
	}

	priv, err := crypto.GenerateRSA(crypto.DefaultRandom(), crypto.MinRSAKeyBits)
	if err != nil {
		return domain.PublicKey{}, errors.Wrap(err, "failed to generate test key")
	}
	f.Key = &domain.PublicKey{ID: "test-key", Key: &priv.PublicKey}
	return *f.Key, nil
}
