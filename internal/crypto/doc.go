// Package crypto exposes the primitives paramseal builds its envelope from.
//
// Contents
//
//   - Injected randomness with hard failure on short reads (DefaultRandom,
//     ReadRandom)
//   - RSA recipient keys: base64 SPKI and PEM parsing, size checks, generation
//     and PKCS#8 marshalling (ParsePublicKey, LoadPublicKeyFromPEM, GenerateRSA)
//   - Base64 helpers for the standard and unpadded URL-safe alphabets
//   - Short public-key fingerprints for display (Fingerprint)
//
// # Notes
//
// Every decode or parse failure on a recipient key is reported as
// domain.ErrInvalidPublicKey, so callers never see bare x509 errors. Random
// failures are reported as domain.ErrRandomnessUnavailable and are never
// papered over with a weaker source.
package crypto
