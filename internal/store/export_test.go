package store

import "io"

// Cheap scrypt parameters keep the keystore tests fast.
func NewTestKeyFileStore(dir string, random io.Reader) *KeyFileStore {
	s := NewKeyFileStore(dir)
	s.random = random
	s.kdf = scryptParams{N: 1 << 10, R: 8, P: 1}
	return s
}
