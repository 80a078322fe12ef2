package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
	"paramseal/internal/util/memzero"
)

const (
	// Version is the leading byte of every token.
	Version byte = 0x80
	// IVSize is the CBC initialization vector length.
	IVSize = aes.BlockSize

	tsSize     = 8
	tagSize    = sha256.Size
	headerSize = 1 + tsSize + IVSize

	// MinSize is the decoded length of a token with an empty plaintext.
	MinSize = headerSize + aes.BlockSize + tagSize
)

// Header is the unauthenticated prefix of a token, for diagnostics only.
type Header struct {
	Version       byte
	IssuedAt      time.Time
	IV            [IVSize]byte
	CiphertextLen int
	Size          int
}

// NewIV draws a fresh IV from r.
func NewIV(r io.Reader) (iv [IVSize]byte, err error) {
	err = crypto.ReadRandom(r, iv[:])
	return iv, err
}

// Encode encrypts and authenticates plaintext under secret. The IV must never
// repeat for a given secret; paramseal draws a new secret per call anyway.
func Encode(secret Secret, plaintext []byte, issuedAt time.Time, iv [IVSize]byte) (string, error) {
	signKey, encKey := secret.SigningKey(), secret.EncryptionKey()
	defer memzero.Zero(signKey[:], encKey[:])

	block, err := aes.NewCipher(encKey[:])
	if err != nil {
		return "", errors.Wrapf(domain.ErrEncryptionFailure, "aes: %v", err)
	}

	padded := pad(plaintext, aes.BlockSize)
	defer memzero.Zero(padded)

	buf := make([]byte, headerSize+len(padded), headerSize+len(padded)+tagSize)
	buf[0] = Version
	binary.BigEndian.PutUint64(buf[1:1+tsSize], uint64(issuedAt.Unix()))
	copy(buf[1+tsSize:headerSize], iv[:])
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(buf[headerSize:], padded)

	mac := hmac.New(sha256.New, signKey[:])
	if _, err := mac.Write(buf); err != nil {
		return "", errors.Wrapf(domain.ErrEncryptionFailure, "hmac: %v", err)
	}
	return crypto.B64URL(mac.Sum(buf)), nil
}

// Decode authenticates tok under secret and returns the plaintext and the
// time it was issued. The tag is checked before any decryption. Every failure
// is domain.ErrInvalidToken.
func Decode(secret Secret, tok string) ([]byte, time.Time, error) {
	raw, err := split(tok)
	if err != nil {
		return nil, time.Time{}, err
	}
	if raw[0] != Version {
		return nil, time.Time{}, errors.Wrapf(domain.ErrInvalidToken, "unsupported version 0x%02x", raw[0])
	}

	signKey, encKey := secret.SigningKey(), secret.EncryptionKey()
	defer memzero.Zero(signKey[:], encKey[:])

	body, tag := raw[:len(raw)-tagSize], raw[len(raw)-tagSize:]
	mac := hmac.New(sha256.New, signKey[:])
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), tag) {
		return nil, time.Time{}, errors.Wrap(domain.ErrInvalidToken, "authentication failed")
	}

	block, err := aes.NewCipher(encKey[:])
	if err != nil {
		return nil, time.Time{}, errors.Wrapf(domain.ErrInvalidToken, "aes: %v", err)
	}
	ct := body[headerSize:]
	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, body[1+tsSize:headerSize]).CryptBlocks(pt, ct)
	out, err := unpad(pt, aes.BlockSize)
	if err != nil {
		memzero.Zero(pt)
		return nil, time.Time{}, errors.Wrap(domain.ErrInvalidToken, err.Error())
	}
	return out, issuedAt(raw), nil
}

// Inspect parses the header of tok without authenticating or decrypting it.
func Inspect(tok string) (Header, error) {
	raw, err := split(tok)
	if err != nil {
		return Header{}, err
	}
	h := Header{
		Version:       raw[0],
		IssuedAt:      issuedAt(raw),
		CiphertextLen: len(raw) - headerSize - tagSize,
		Size:          len(raw),
	}
	copy(h.IV[:], raw[1+tsSize:headerSize])
	return h, nil
}

// split decodes tok and checks that its length fits the layout.
func split(tok string) ([]byte, error) {
	raw, err := crypto.DecodeB64URL(tok)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidToken, "base64: %v", err)
	}
	if len(raw) < MinSize || (len(raw)-headerSize-tagSize)%aes.BlockSize != 0 {
		return nil, errors.Wrapf(domain.ErrInvalidToken, "bad length %d", len(raw))
	}
	return raw, nil
}

func issuedAt(raw []byte) time.Time {
	return time.Unix(int64(binary.BigEndian.Uint64(raw[1:1+tsSize])), 0).UTC()
}
