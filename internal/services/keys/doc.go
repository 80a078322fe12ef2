// Package keys generates and exposes the local recipient key pair.
//
// The pair stands in for the backend's key during development: its public
// half can be pasted into a seal call and the private half, sealed under a
// passphrase, opens the result. Passphrases must pass a basic strength policy.
package keys
