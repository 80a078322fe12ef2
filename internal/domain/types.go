package domain

import "crypto/rsa"

// SecretParamType is the parameter type tag the scheduler expects for sealed values.
const SecretParamType = "secret"

// Fingerprint is a short hex digest of a public key, for display.
type Fingerprint string

// KeyID identifies a recipient key pair.
type KeyID string

// PublicKey is a recipient key as handed out by the key endpoint or the local keystore.
type PublicKey struct {
	ID  KeyID
	Key *rsa.PublicKey
}

// KeyPair is the locally generated recipient key pair held by the keystore.
type KeyPair struct {
	ID         KeyID
	Private    *rsa.PrivateKey
	CreatedUTC int64
}

// SecretParam is the job parameter object carrying a sealed value.
type SecretParam struct {
	Type      string `json:"type"`
	Encrypted string `json:"encrypted"`
}

// NewSecretParam wraps an envelope as a job parameter.
func NewSecretParam(envelope string) SecretParam {
	return SecretParam{Type: SecretParamType, Encrypted: envelope}
}
