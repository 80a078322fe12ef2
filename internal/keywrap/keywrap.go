package keywrap

import (
	"crypto/rsa"
	"crypto/sha256"
	"io"

	"github.com/pkg/errors"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
)

// Capacity is the largest plaintext OAEP-SHA-256 can wrap under pub:
// k - 2*hLen - 2 bytes, where k is the modulus size in bytes.
func Capacity(pub *rsa.PublicKey) int {
	if pub == nil || pub.N == nil {
		return 0
	}
	return pub.Size() - 2*sha256.Size - 2
}

// Wrap encrypts plaintext to pub. Randomness for the OAEP seed comes from r.
func Wrap(r io.Reader, pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	if err := crypto.CheckKeySize(pub); err != nil {
		return nil, err
	}
	if limit := Capacity(pub); len(plaintext) > limit {
		return nil, errors.Wrapf(domain.ErrPlaintextTooLarge,
			"%d bytes exceeds capacity of %d for a %d-bit key", len(plaintext), limit, pub.N.BitLen())
	}
	if r == nil {
		return nil, errors.Wrap(domain.ErrRandomnessUnavailable, "no random source")
	}

	out, err := rsa.EncryptOAEP(sha256.New(), &randomReader{r: r}, pub, plaintext, nil)
	if err != nil {
		var rerr *randomError
		if errors.As(err, &rerr) {
			return nil, errors.Wrapf(domain.ErrRandomnessUnavailable, "OAEP seed: %v", rerr.err)
		}
		return nil, errors.Wrapf(domain.ErrEncryptionFailure, "RSA-OAEP: %v", err)
	}
	return out, nil
}

// Unwrap reverses Wrap with the recipient's private key.
func Unwrap(priv *rsa.PrivateKey, wrapped []byte) ([]byte, error) {
	if priv == nil {
		return nil, errors.Wrap(domain.ErrInvalidEnvelope, "no private key")
	}
	if len(wrapped) != priv.Size() {
		return nil, errors.Wrapf(domain.ErrInvalidEnvelope,
			"wrapped key is %d bytes, want %d", len(wrapped), priv.Size())
	}
	out, err := rsa.DecryptOAEP(sha256.New(), nil, priv, wrapped, nil)
	if err != nil {
		return nil, errors.Wrap(domain.ErrInvalidEnvelope, "unwrap key")
	}
	return out, nil
}

// randomReader tags errors from the caller's reader so Wrap can tell a
// randomness failure apart from an RSA one.
type randomReader struct{ r io.Reader }

type randomError struct{ err error }

func (e *randomError) Error() string { return e.err.Error() }

func (rr *randomReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil {
		return n, &randomError{err: err}
	}
	return n, nil
}
