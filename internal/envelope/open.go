package envelope

import (
	"crypto/rsa"

	"github.com/pkg/errors"

	"paramseal/internal/domain"
	"paramseal/internal/keywrap"
	"paramseal/internal/token"
	"paramseal/internal/util/memzero"
)

// Open recovers the cleartext sealed in s. It is what the backend does with a
// secret parameter; paramseal itself only uses it in tests.
func Open(priv *rsa.PrivateKey, s string) (string, error) {
	env, err := Parse(s)
	if err != nil {
		return "", err
	}
	wrapped, err := env.WrappedKey()
	if err != nil {
		return "", err
	}

	keyText, err := keywrap.Unwrap(priv, wrapped)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(keyText)

	secret, err := token.ParseSecret(string(keyText))
	if err != nil {
		return "", errors.Wrapf(domain.ErrInvalidEnvelope, "unwrapped key: %v", err)
	}
	defer secret.Wipe()

	pt, _, err := token.Decode(secret, env.Payload)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(pt)
	return string(pt), nil
}
