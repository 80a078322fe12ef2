package envelope

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
)

// Envelope is the decoded outer frame of a sealed value.
type Envelope struct {
	// Key is the wrapped secret, standard base64.
	Key string `json:"key"`
	// Payload is the token, unpadded URL-safe base64.
	Payload string `json:"payload"`
}

// Assemble frames a wrapped key and a token into the envelope string.
func Assemble(wrappedKey []byte, payload string) (string, error) {
	if len(wrappedKey) == 0 || payload == "" {
		return "", errors.Wrap(domain.ErrEncryptionFailure, "envelope parts cannot be empty")
	}
	doc, err := json.Marshal(Envelope{Key: crypto.B64(wrappedKey), Payload: payload})
	if err != nil {
		return "", errors.Wrapf(domain.ErrEncryptionFailure, "marshal envelope: %v", err)
	}
	return crypto.B64(doc), nil
}

// Parse reverses Assemble. Both fields must be present as non-empty strings
// and nothing else may appear in the frame.
func Parse(s string) (Envelope, error) {
	doc, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Envelope{}, errors.Wrapf(domain.ErrInvalidEnvelope, "base64: %v", err)
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return Envelope{}, errors.Wrapf(domain.ErrInvalidEnvelope, "json: %v", err)
	}
	if dec.More() {
		return Envelope{}, errors.Wrap(domain.ErrInvalidEnvelope, "trailing data after envelope")
	}
	if env.Key == "" {
		return Envelope{}, errors.Wrap(domain.ErrInvalidEnvelope, "missing key")
	}
	if env.Payload == "" {
		return Envelope{}, errors.Wrap(domain.ErrInvalidEnvelope, "missing payload")
	}
	return env, nil
}

// WrappedKey returns the decoded wrapped secret.
func (e Envelope) WrappedKey() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(e.Key)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidEnvelope, "key base64: %v", err)
	}
	return b, nil
}
