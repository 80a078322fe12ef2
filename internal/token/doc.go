// Package token implements the authenticated symmetric token that carries a
// sealed parameter value.
//
// Layout (before unpadded URL-safe base64):
//
//	0x80 | issued-at (uint64 BE, unix seconds) | IV (16) | AES-128-CBC(PKCS#7(pt)) | HMAC-SHA256 (32)
//
// The 32-byte Secret is split in two: the first 16 bytes key the HMAC, the last
// 16 bytes key AES. The tag covers every byte before it. This is the Fernet
// layout, so recipients with a stock Fernet implementation can open tokens once
// the base64 padding is restored.
//
// Encode is pure: callers supply the IV and timestamp. Decode verifies the tag
// before touching the ciphertext and enforces no expiry; the issued-at time is
// returned so the recipient can apply its own policy.
package token
