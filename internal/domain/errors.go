package domain

import "github.com/pkg/errors"

// Sealing failures. Callers match them with errors.Is; wrapped messages never
// carry cleartext or key material.
var (
	// ErrRandomnessUnavailable is returned when the random source fails or comes up short.
	ErrRandomnessUnavailable = errors.New("secure randomness unavailable")

	// ErrInvalidPublicKey is returned when the recipient key cannot be decoded or is unusable.
	ErrInvalidPublicKey = errors.New("invalid recipient public key")

	// ErrPlaintextTooLarge is returned when the wrap input exceeds the OAEP capacity of the key.
	ErrPlaintextTooLarge = errors.New("plaintext too large for recipient key")

	// ErrEncryptionFailure is returned when a cipher or MAC primitive reports an error.
	ErrEncryptionFailure = errors.New("encryption failure")
)

// Opening failures, raised by the recipient-side reference decoder.
var (
	ErrInvalidToken    = errors.New("invalid or tampered token")
	ErrInvalidEnvelope = errors.New("malformed envelope")
)
