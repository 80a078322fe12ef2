package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"io"
	"os"

	"github.com/pkg/errors"

	"paramseal/internal/domain"
)

// MinRSAKeyBits is the smallest recipient modulus accepted. Anything below it
// is rejected rather than silently used.
const MinRSAKeyBits = 2048

// ParsePublicKey decodes a base64 (standard alphabet) SubjectPublicKeyInfo, as
// served by the scheduler's public-key endpoint, into an RSA key suitable for
// OAEP. Embedded whitespace is ignored.
func ParsePublicKey(b64 string) (*rsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(stripSpace(b64))
	if err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidPublicKey, "base64: %v", err)
	}
	return ParsePublicKeyDER(der)
}

// ParsePublicKeyDER parses a DER SubjectPublicKeyInfo.
func ParsePublicKeyDER(der []byte) (*rsa.PublicKey, error) {
	if len(der) == 0 {
		return nil, errors.Wrap(domain.ErrInvalidPublicKey, "empty key")
	}
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidPublicKey, "parse PKIX public key: %v", err)
	}
	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.Wrapf(domain.ErrInvalidPublicKey, "key is not an RSA public key, got %T", pub)
	}
	if err := CheckKeySize(rsaKey); err != nil {
		return nil, err
	}
	return rsaKey, nil
}

// CheckKeySize rejects nil keys and moduli below MinRSAKeyBits.
func CheckKeySize(pub *rsa.PublicKey) error {
	if pub == nil || pub.N == nil {
		return errors.Wrap(domain.ErrInvalidPublicKey, "RSA public key cannot be nil")
	}
	if bits := pub.N.BitLen(); bits < MinRSAKeyBits {
		return errors.Wrapf(domain.ErrInvalidPublicKey,
			"RSA key size must be at least %d bits, got %d bits", MinRSAKeyBits, bits)
	}
	return nil
}

// MarshalPublicKey returns the base64 SPKI form of pub, the inverse of ParsePublicKey.
func MarshalPublicKey(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", errors.Wrap(err, "marshal public key")
	}
	return B64(der), nil
}

// EncodePublicKeyPEM returns pub as a "PUBLIC KEY" PEM block.
func EncodePublicKeyPEM(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, errors.Wrap(err, "marshal public key")
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// LoadPublicKeyFromPEM parses an RSA public key from PEM-encoded bytes.
// The PEM block should be of type "PUBLIC KEY" or "RSA PUBLIC KEY".
func LoadPublicKeyFromPEM(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.Wrap(domain.ErrInvalidPublicKey, "failed to decode PEM block")
	}

	switch block.Type {
	case "PUBLIC KEY":
		return ParsePublicKeyDER(block.Bytes)
	case "RSA PUBLIC KEY":
		rsaKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrapf(domain.ErrInvalidPublicKey, "parse PKCS1 RSA public key: %v", err)
		}
		if err := CheckKeySize(rsaKey); err != nil {
			return nil, err
		}
		return rsaKey, nil
	}

	return nil, errors.Wrapf(domain.ErrInvalidPublicKey,
		"unsupported PEM block type: %s (expected PUBLIC KEY or RSA PUBLIC KEY)", block.Type)
}

// LoadPublicKeyFromPEMFile reads and parses an RSA public key from a PEM file.
func LoadPublicKeyFromPEMFile(path string) (*rsa.PublicKey, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read PEM file")
	}
	return LoadPublicKeyFromPEM(pemBytes)
}

// GenerateRSA returns a fresh recipient key pair of the given size.
func GenerateRSA(r io.Reader, bits int) (*rsa.PrivateKey, error) {
	if bits < MinRSAKeyBits {
		return nil, errors.Errorf("RSA key size must be at least %d bits, got %d bits", MinRSAKeyBits, bits)
	}
	if r == nil {
		return nil, errors.Wrap(domain.ErrRandomnessUnavailable, "no random source")
	}
	priv, err := rsa.GenerateKey(r, bits)
	if err != nil {
		return nil, errors.Wrap(err, "generate RSA key")
	}
	return priv, nil
}

// MarshalPrivateKey returns the PKCS#8 DER encoding of priv.
func MarshalPrivateKey(priv *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, errors.Wrap(err, "marshal private key")
	}
	return der, nil
}

// ParsePrivateKey parses a PKCS#8 DER RSA private key.
func ParsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, errors.Wrap(err, "parse PKCS8 private key")
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("key is not an RSA private key, got %T", key)
	}
	return priv, nil
}
