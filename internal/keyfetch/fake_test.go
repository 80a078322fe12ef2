package keyfetch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramseal/internal/keyfetch"
	"paramseal/internal/testutil"
)

func TestFakeClient(t *testing.T) {
	t.Run("configured key", func(t *testing.T) {
		pub := &testutil.RSAKey().PublicKey
		fake := keyfetch.NewFakeClientWithKey("k1", pub)

		key, err := fake.FetchKey(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "k1", string(key.ID))
		assert.Same(t, pub, key.Key)
		assert.Equal(t, 1, fake.FetchKeyCalls)
	})

	t.Run("configured error", func(t *testing.T) {
		wantErr := errors.New("backend down")
		fake := keyfetch.NewFakeClientWithError(wantErr)

		_, err := fake.FetchKey(context.Background())
		require.ErrorIs(t, err, wantErr)
	})

	t.Run("generated key is reused", func(t *testing.T) {
		fake := keyfetch.NewFakeClient()

		first, err := fake.FetchKey(context.Background())
		require.NoError(t, err)
		second, err := fake.FetchKey(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2048, first.Key.N.BitLen())
		assert.Same(t, first.Key, second.Key)
		assert.Equal(t, 2, fake.FetchKeyCalls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := keyfetch.NewFakeClient().FetchKey(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
