package keys_test

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramseal/internal/domain"
	"paramseal/internal/services/keys"
	"paramseal/internal/testutil"
)

const strongPass = "Tr0ub4dor&3-horse"

// memStore is an in-memory domain.KeyStore.
type memStore struct {
	pass string
	kp   *domain.KeyPair
}

func (m *memStore) SaveKeyPair(passphrase string, kp domain.KeyPair) error {
	m.pass, m.kp = passphrase, &kp
	return nil
}

func (m *memStore) LoadKeyPair(passphrase string) (domain.KeyPair, error) {
	if m.kp == nil || passphrase != m.pass {
		return domain.KeyPair{}, errors.New("not found")
	}
	return *m.kp, nil
}

func (m *memStore) LoadPublicKey() (domain.PublicKey, bool, error) {
	if m.kp == nil {
		return domain.PublicKey{}, false, nil
	}
	return domain.PublicKey{ID: m.kp.ID, Key: &m.kp.Private.PublicKey}, true, nil
}

func TestGenerateKeyPair(t *testing.T) {
	st := &memStore{}
	svc := keys.New(st, rand.Reader)

	pub, fp, err := svc.GenerateKeyPair(strongPass)
	require.NoError(t, err)
	assert.Equal(t, 2048, pub.Key.N.BitLen())
	assert.Len(t, string(fp), 20)
	assert.Len(t, string(pub.ID), 36, "key IDs are UUIDs")

	require.NotNil(t, st.kp)
	assert.Equal(t, strongPass, st.pass)
	assert.NotZero(t, st.kp.CreatedUTC)

	got, err := svc.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, pub.ID, got.ID)
	assert.True(t, pub.Key.Equal(got.Key))

	again, err := svc.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, again)
}

func TestGenerateKeyPair_WeakPassphrase(t *testing.T) {
	svc := keys.New(&memStore{}, rand.Reader)

	for _, pass := range []string{
		"",
		"Short1!",
		"alllowercase123!",
		"ALLUPPERCASE123!",
		"NoDigitsHere!!",
		"NoSymbols12345",
	} {
		_, _, err := svc.GenerateKeyPair(pass)
		assert.ErrorIs(t, err, keys.ErrWeakPassphrase, "passphrase %q", pass)
	}
}

func TestGenerateKeyPair_RandomnessFailure(t *testing.T) {
	svc := keys.New(&memStore{}, testutil.FailingReader{Err: errors.New("no entropy")})

	_, _, err := svc.GenerateKeyPair(strongPass)
	require.Error(t, err)
}

func TestGenerateKeyPair_RejectsSmallKeys(t *testing.T) {
	svc := keys.New(&memStore{}, rand.Reader).WithKeyBits(1024)

	_, _, err := svc.GenerateKeyPair(strongPass)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2048 bits")
}

func TestPublicKey_NoKey(t *testing.T) {
	svc := keys.New(&memStore{}, nil)

	_, err := svc.PublicKey()
	require.ErrorIs(t, err, keys.ErrNoKey)

	_, err = svc.Fingerprint()
	require.ErrorIs(t, err, keys.ErrNoKey)
}
