package seal

import (
	"context"
	"crypto/rsa"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
)

// StaticKey serves one key that was supplied up front, e.g. on the command line.
type StaticKey struct {
	Key domain.PublicKey
}

// NewStaticKey identifies pub by its fingerprint.
func NewStaticKey(pub *rsa.PublicKey) (StaticKey, error) {
	if err := crypto.CheckKeySize(pub); err != nil {
		return StaticKey{}, err
	}
	fp, err := crypto.FingerprintPublicKey(pub)
	if err != nil {
		return StaticKey{}, err
	}
	return StaticKey{Key: domain.PublicKey{ID: domain.KeyID(fp), Key: pub}}, nil
}

// FetchKey returns the static key.
func (s StaticKey) FetchKey(ctx context.Context) (domain.PublicKey, error) {
	if err := ctx.Err(); err != nil {
		return domain.PublicKey{}, err
	}
	return s.Key, nil
}

// LocalKey serves the public half of the local keystore.
type LocalKey struct {
	Keys domain.KeyService
}

// FetchKey returns the stored public key.
func (l LocalKey) FetchKey(ctx context.Context) (domain.PublicKey, error) {
	if err := ctx.Err(); err != nil {
		return domain.PublicKey{}, err
	}
	return l.Keys.PublicKey()
}

var (
	_ domain.KeyFetcher = StaticKey{}
	_ domain.KeyFetcher = LocalKey{}
)
