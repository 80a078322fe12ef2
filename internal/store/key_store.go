package store

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
	"paramseal/internal/util/memzero"
)

const (
	privateKeyFile = "recipient.key.enc"
	publicKeyFile  = "recipient.pub.json"
)

// ErrNoKeyPair is returned by LoadKeyPair when nothing has been saved yet.
var ErrNoKeyPair = errors.New("no key pair in keystore; run `paramseal keygen`")

// publicRecord is the clear-text half of the keystore.
type publicRecord struct {
	ID         string `json:"id"`
	PublicKey  string `json:"public_key"`
	CreatedUTC int64  `json:"created_utc"`
}

// privateRecord is what gets sealed under the passphrase.
type privateRecord struct {
	ID         string `json:"id"`
	PKCS8      []byte `json:"pkcs8"`
	CreatedUTC int64  `json:"created_utc"`
}

// KeyFileStore persists the recipient key pair under a directory.
type KeyFileStore struct {
	dir    string
	random io.Reader
	kdf    scryptParams
	mu     sync.Mutex
}

// NewKeyFileStore returns a KeyFileStore rooted at dir.
func NewKeyFileStore(dir string) *KeyFileStore {
	return &KeyFileStore{dir: dir, random: crypto.DefaultRandom(), kdf: defaultScryptParams()}
}

var _ domain.KeyStore = (*KeyFileStore)(nil)

// SaveKeyPair seals the private key under passphrase and writes both halves,
// replacing any previous pair.
func (s *KeyFileStore) SaveKeyPair(passphrase string, kp domain.KeyPair) error {
	if kp.Private == nil {
		return errors.New("key pair has no private key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	der, err := crypto.MarshalPrivateKey(kp.Private)
	if err != nil {
		return err
	}
	defer memzero.Zero(der)

	pub, err := crypto.MarshalPublicKey(&kp.Private.PublicKey)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(privateRecord{ID: string(kp.ID), PKCS8: der, CreatedUTC: kp.CreatedUTC})
	if err != nil {
		return errors.Wrap(err, "encode private record")
	}
	defer memzero.Zero(raw)

	sealed, err := sealWithPassphrase(s.random, passphrase, raw, s.kdf)
	if err != nil {
		return errors.Wrap(err, "seal private key")
	}
	rec, err := json.MarshalIndent(publicRecord{ID: string(kp.ID), PublicKey: pub, CreatedUTC: kp.CreatedUTC}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode public record")
	}
	return s.replacePair(sealed, rec)
}

// replacePair swaps in both halves of a key pair. Both are staged before
// either is committed; the public record goes first and is restored if the
// private key cannot follow.
func (s *KeyFileStore) replacePair(sealedPriv, pubRecord []byte) error {
	privPath := filepath.Join(s.dir, privateKeyFile)
	pubPath := filepath.Join(s.dir, publicKeyFile)

	prevPub, err := readFile(pubPath)
	if err != nil {
		return err
	}

	privTmp, err := stageFile(privPath, sealedPriv, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(privTmp) }()
	pubTmp, err := stageFile(pubPath, pubRecord, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(pubTmp) }()

	if err := commitFile(pubTmp, pubPath); err != nil {
		return err
	}
	if err := commitFile(privTmp, privPath); err != nil {
		if prevPub == nil {
			_ = os.Remove(pubPath)
		} else if rerr := writeFile(pubPath, prevPub, 0o644); rerr != nil {
			return errors.Wrapf(err, "restore public record failed (%v)", rerr)
		}
		return err
	}
	return nil
}

// LoadKeyPair opens the sealed private key with passphrase.
func (s *KeyFileStore) LoadKeyPair(passphrase string) (domain.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sealed, err := readFile(filepath.Join(s.dir, privateKeyFile))
	if err != nil {
		return domain.KeyPair{}, err
	}
	if sealed == nil {
		return domain.KeyPair{}, ErrNoKeyPair
	}
	raw, err := openWithPassphrase(passphrase, sealed)
	if err != nil {
		return domain.KeyPair{}, err
	}
	defer memzero.Zero(raw)

	var rec privateRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.KeyPair{}, errors.Wrap(err, "decode private record")
	}
	defer memzero.Zero(rec.PKCS8)

	priv, err := crypto.ParsePrivateKey(rec.PKCS8)
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.KeyPair{ID: domain.KeyID(rec.ID), Private: priv, CreatedUTC: rec.CreatedUTC}, nil
}

// LoadPublicKey reads the clear public half. ok is false when no pair has been
// saved.
func (s *KeyFileStore) LoadPublicKey() (domain.PublicKey, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec publicRecord
	ok, err := readJSON(filepath.Join(s.dir, publicKeyFile), &rec)
	if err != nil || !ok {
		return domain.PublicKey{}, false, err
	}
	pub, err := crypto.ParsePublicKey(rec.PublicKey)
	if err != nil {
		return domain.PublicKey{}, false, errors.Wrapf(err, "keystore %s", publicKeyFile)
	}
	return domain.PublicKey{ID: domain.KeyID(rec.ID), Key: pub}, true, nil
}
