package token

import (
	"io"

	"github.com/pkg/errors"

	"paramseal/internal/crypto"
	"paramseal/internal/util/memzero"
)

const (
	// SecretSize is the full symmetric secret length in bytes.
	SecretSize = 32
	// SecretTextLen is the length of Secret.Text.
	SecretTextLen = 43

	halfSize = SecretSize / 2
)

// Secret is the per-envelope symmetric secret.
type Secret [SecretSize]byte

// NewSecret draws a fresh secret from r.
func NewSecret(r io.Reader) (Secret, error) {
	var s Secret
	if err := crypto.ReadRandom(r, s[:]); err != nil {
		return Secret{}, err
	}
	return s, nil
}

// ParseSecret accepts the unpadded 43-char text form and the padded 44-char form.
func ParseSecret(text string) (Secret, error) {
	b, err := crypto.DecodeB64URL(text)
	if err != nil {
		return Secret{}, errors.Wrap(err, "decode secret")
	}
	defer memzero.Zero(b)
	if len(b) != SecretSize {
		return Secret{}, errors.Errorf("secret must be %d bytes, got %d", SecretSize, len(b))
	}
	var s Secret
	copy(s[:], b)
	return s, nil
}

// Text is the unpadded URL-safe base64 form. It is what gets wrapped for the
// recipient, not the raw bytes; the decrypting side depends on that.
func (s Secret) Text() string { return crypto.B64URL(s[:]) }

// SigningKey returns the HMAC half.
func (s Secret) SigningKey() (k [halfSize]byte) {
	copy(k[:], s[:halfSize])
	return k
}

// EncryptionKey returns the AES half.
func (s Secret) EncryptionKey() (k [halfSize]byte) {
	copy(k[:], s[halfSize:])
	return k
}

// Wipe zeroes the secret in place.
func (s *Secret) Wipe() { memzero.Zero(s[:]) }

// String keeps the secret out of logs and error messages.
func (s Secret) String() string { return "token.Secret(redacted)" }

// GoString covers %#v.
func (s Secret) GoString() string { return s.String() }
