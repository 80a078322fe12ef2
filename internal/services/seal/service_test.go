package seal_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramseal/internal/domain"
	"paramseal/internal/envelope"
	"paramseal/internal/keyfetch"
	"paramseal/internal/services/seal"
	"paramseal/internal/testutil"
)

func TestSealParam(t *testing.T) {
	priv := testutil.RSAKey()
	fetcher := keyfetch.NewFakeClientWithKey("k1", &priv.PublicKey)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	svc := seal.New(fetcher, nil, logrus.NewEntry(logger))
	param, err := svc.SealParam(context.Background(), "verrah-secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", param.Type)

	got, err := envelope.Open(priv, param.Encrypted)
	require.NoError(t, err)
	assert.Equal(t, "verrah-secret", got)

	b, err := json.Marshal(param)
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, map[string]string{"type": "secret", "encrypted": param.Encrypted}, m)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, domain.KeyID("k1"), hook.LastEntry().Data["key_id"])
	assert.Equal(t, 1, fetcher.FetchKeyCalls)
}

func TestSealParam_FetchError(t *testing.T) {
	wantErr := errors.New("backend down")
	svc := seal.New(keyfetch.NewFakeClientWithError(wantErr), nil, nil)

	_, err := svc.SealParam(context.Background(), "v")
	require.ErrorIs(t, err, wantErr)
}

func TestSealParam_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := seal.New(keyfetch.NewFakeClientWithKey("k1", &testutil.RSAKey().PublicKey), nil, nil)
	_, err := svc.SealParam(ctx, "v")
	require.ErrorIs(t, err, context.Canceled)
}

func TestStaticKey(t *testing.T) {
	pub := &testutil.RSAKey().PublicKey
	src, err := seal.NewStaticKey(pub)
	require.NoError(t, err)

	key, err := src.FetchKey(context.Background())
	require.NoError(t, err)
	assert.Len(t, string(key.ID), 20)
	assert.Same(t, pub, key.Key)

	_, err = seal.NewStaticKey(nil)
	require.ErrorIs(t, err, domain.ErrInvalidPublicKey)
}

type stubKeys struct {
	pub domain.PublicKey
	err error
}

func (s stubKeys) GenerateKeyPair(string) (domain.PublicKey, domain.Fingerprint, error) {
	return domain.PublicKey{}, "", errors.New("not implemented")
}

func (s stubKeys) PublicKey() (domain.PublicKey, error) { return s.pub, s.err }

func TestLocalKey(t *testing.T) {
	pub := domain.PublicKey{ID: "local", Key: &testutil.RSAKey().PublicKey}
	svc := seal.New(seal.LocalKey{Keys: stubKeys{pub: pub}}, nil, nil)

	out, err := svc.Seal(context.Background(), "v")
	require.NoError(t, err)
	got, err := envelope.Open(testutil.RSAKey(), out)
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	wantErr := errors.New("no key")
	_, err = seal.LocalKey{Keys: stubKeys{err: wantErr}}.FetchKey(context.Background())
	require.ErrorIs(t, err, wantErr)
}
