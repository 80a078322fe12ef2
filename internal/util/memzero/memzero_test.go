package memzero_test

import (
	"bytes"
	"testing"

	"paramseal/internal/util/memzero"
)

func TestZero_ClearsEveryBuffer(t *testing.T) {
	a := []byte("signing-half")
	b := []byte("encryption-half")
	memzero.Zero(a, nil, b)

	if !bytes.Equal(a, make([]byte, len(a))) || !bytes.Equal(b, make([]byte, len(b))) {
		t.Fatalf("buffers not zeroed: %x %x", a, b)
	}
}
