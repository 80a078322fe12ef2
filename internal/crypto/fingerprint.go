package crypto

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"

	"github.com/pkg/errors"
)

// Fingerprint returns a short hex fingerprint of encoded key bytes.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(der []byte) string {
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:10])
}

// FingerprintPublicKey fingerprints the SPKI encoding of pub.
func FingerprintPublicKey(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", errors.Wrap(err, "marshal public key")
	}
	return Fingerprint(der), nil
}
