// Package store keeps the local recipient key pair on disk.
//
// The private key is PKCS#8-encoded and sealed with ChaCha20-Poly1305 under a
// key derived from the user's passphrase with scrypt. The public half and its
// ID are written next to it in the clear, so `paramseal pubkey` and `seal`
// never need the passphrase. Writes go through a temp file and a rename.
package store
