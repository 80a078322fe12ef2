package crypto_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramseal/internal/crypto"
	"paramseal/internal/domain"
	"paramseal/internal/testutil"
)

func TestReadRandom(t *testing.T) {
	b := make([]byte, 32)
	require.NoError(t, crypto.ReadRandom(crypto.DefaultRandom(), b))
	assert.NotEqual(t, make([]byte, 32), b)
}

func TestReadRandom_Failures(t *testing.T) {
	tests := []struct {
		name string
		run  func([]byte) error
	}{
		{name: "nil reader", run: func(b []byte) error { return crypto.ReadRandom(nil, b) }},
		{name: "read error", run: func(b []byte) error {
			return crypto.ReadRandom(testutil.FailingReader{Err: errors.New("boom")}, b)
		}},
		{name: "short read", run: func(b []byte) error { return crypto.ReadRandom(strings.NewReader("abc"), b) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := make([]byte, 16)
			err := tt.run(b)
			require.ErrorIs(t, err, domain.ErrRandomnessUnavailable)
			assert.Equal(t, make([]byte, 16), b, "buffer must be left zeroed")
		})
	}
}

func TestDecodeB64URL_PaddingOptional(t *testing.T) {
	want := []byte{0xfb, 0xff}
	enc := crypto.B64URL(want)
	assert.Equal(t, "-_8", enc)

	for _, in := range []string{"-_8", "-_8="} {
		got, err := crypto.DecodeB64URL(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeB64URL_RejectsWrongPadding(t *testing.T) {
	for _, in := range []string{"-_8==", "-_8===", "-_8=A", "-_8A="} {
		_, err := crypto.DecodeB64URL(in)
		assert.Error(t, err, in)
	}
}
