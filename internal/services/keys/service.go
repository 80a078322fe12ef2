package keys

import (
	"io"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	// DefaultKeyBits is the modulus size of generated key pairs.
	DefaultKeyBits = 2048
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = errors.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrNoKey is returned when no key pair has been generated yet.
	ErrNoKey = errors.New("no recipient key; run `paramseal keygen` first")
)

// Service manages recipient key creation and access using a backing store.
type Service struct {
	store  domain.KeyStore
	random io.Reader
	now    func() time.Time
	bits   int
}

// New returns a key service backed by the given store. A nil random uses the
// platform CSPRNG.
func New(s domain.KeyStore, random io.Reader) *Service {
	if random == nil {
		random = crypto.DefaultRandom()
	}
	return &Service{store: s, random: random, now: time.Now, bits: DefaultKeyBits}
}

// WithKeyBits returns a copy of s that generates keys of the given size.
func (s *Service) WithKeyBits(bits int) *Service {
	c := *s
	c.bits = bits
	return &c
}

// GenerateKeyPair creates a new RSA key pair, saves it sealed under passphrase,
// and returns its public half plus a short fingerprint.
func (s *Service) GenerateKeyPair(passphrase string) (domain.PublicKey, domain.Fingerprint, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.PublicKey{}, "", ErrWeakPassphrase
	}

	priv, err := crypto.GenerateRSA(s.random, s.bits)
	if err != nil {
		return domain.PublicKey{}, "", err
	}
	kp := domain.KeyPair{
		ID:         domain.KeyID(uuid.New().String()),
		Private:    priv,
		CreatedUTC: s.now().UTC().Unix(),
	}
	if err := s.store.SaveKeyPair(passphrase, kp); err != nil {
		return domain.PublicKey{}, "", err
	}

	pub := domain.PublicKey{ID: kp.ID, Key: &priv.PublicKey}
	fp, err := crypto.FingerprintPublicKey(pub.Key)
	if err != nil {
		return domain.PublicKey{}, "", err
	}
	return pub, domain.Fingerprint(fp), nil
}

// PublicKey returns the stored public key. It does not need the passphrase.
func (s *Service) PublicKey() (domain.PublicKey, error) {
	pub, ok, err := s.store.LoadPublicKey()
	if err != nil {
		return domain.PublicKey{}, err
	}
	if !ok {
		return domain.PublicKey{}, ErrNoKey
	}
	return pub, nil
}

// Fingerprint returns a short fingerprint of the stored public key.
func (s *Service) Fingerprint() (domain.Fingerprint, error) {
	pub, err := s.PublicKey()
	if err != nil {
		return "", err
	}
	fp, err := crypto.FingerprintPublicKey(pub.Key)
	if err != nil {
		return "", err
	}
	return domain.Fingerprint(fp), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.KeyService.
var _ domain.KeyService = (*Service)(nil)
