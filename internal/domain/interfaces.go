package domain

import "context"

// KeyFetcher retrieves the recipient public key from the scheduler backend.
type KeyFetcher interface {
	FetchKey(ctx context.Context) (PublicKey, error)
}

// KeyStore persists the local recipient key pair, sealed under a passphrase.
type KeyStore interface {
	SaveKeyPair(passphrase string, kp KeyPair) error
	LoadKeyPair(passphrase string) (KeyPair, error)
	// LoadPublicKey reads the public half, which is stored in the clear.
	LoadPublicKey() (PublicKey, bool, error)
}

// KeyService generates and exposes the local recipient key pair.
type KeyService interface {
	GenerateKeyPair(passphrase string) (PublicKey, Fingerprint, error)
	PublicKey() (PublicKey, error)
}

// SealService resolves a recipient key and seals secret parameter values for it.
type SealService interface {
	SealParam(ctx context.Context, cleartext string) (SecretParam, error)
}
