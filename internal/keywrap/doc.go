// Package keywrap encrypts a symmetric secret to a recipient RSA key with
// OAEP, using SHA-256 for both the hash and MGF1.
//
// Callers wrap the 43-character text form of a token.Secret, not its raw
// bytes. Existing recipients unwrap to that text and parse it, so the choice is
// part of the wire format.
package keywrap
