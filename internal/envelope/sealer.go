package envelope

import (
	"context"
	"crypto/rsa"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"paramseal/internal/crypto"
	"paramseal/internal/keywrap"
	"paramseal/internal/token"
	"paramseal/internal/util/memzero"
)

// Sealer turns cleartext into envelopes. Its configuration is fixed at
// construction, so one Sealer may serve concurrent callers as long as its
// random source is safe for concurrent use.
type Sealer struct {
	random io.Reader
	now    func() time.Time
	log    *logrus.Entry
}

// Option configures a Sealer.
type Option func(*Sealer)

// WithRandom sets the source of secrets, IVs and OAEP seeds.
func WithRandom(r io.Reader) Option {
	return func(s *Sealer) { s.random = r }
}

// WithClock sets the clock stamped into each token.
func WithClock(now func() time.Time) Option {
	return func(s *Sealer) { s.now = now }
}

// WithLogger sets the logger. Only sizes are ever logged.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Sealer) { s.log = log }
}

// NewSealer returns a Sealer using crypto/rand and the wall clock unless
// overridden.
func NewSealer(opts ...Option) *Sealer {
	s := &Sealer{
		random: crypto.DefaultRandom(),
		now:    time.Now,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seal parses publicKey (base64 SubjectPublicKeyInfo) and seals cleartext for it.
func (s *Sealer) Seal(ctx context.Context, publicKey string, cleartext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	pub, err := crypto.ParsePublicKey(publicKey)
	if err != nil {
		return "", err
	}
	return s.SealKey(ctx, pub, cleartext)
}

// SealKey seals cleartext for an already parsed recipient key. It returns
// either a complete envelope or an error, never both.
func (s *Sealer) SealKey(ctx context.Context, pub *rsa.PublicKey, cleartext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := crypto.CheckKeySize(pub); err != nil {
		return "", err
	}

	secret, err := token.NewSecret(s.random)
	if err != nil {
		return "", err
	}
	defer secret.Wipe()

	iv, err := token.NewIV(s.random)
	if err != nil {
		return "", err
	}

	plaintext := []byte(cleartext)
	defer memzero.Zero(plaintext)
	payload, err := token.Encode(secret, plaintext, s.now(), iv)
	if err != nil {
		return "", err
	}

	keyText := []byte(secret.Text())
	defer memzero.Zero(keyText)
	wrapped, err := keywrap.Wrap(s.random, pub, keyText)
	if err != nil {
		return "", err
	}

	out, err := Assemble(wrapped, payload)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"key_bits":      pub.N.BitLen(),
		"payload_bytes": len(payload),
	}).Debug("sealed value")
	return out, nil
}
