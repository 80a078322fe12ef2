package crypto

import (
	"encoding/base64"
	"strings"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// B64URL returns unpadded URL-safe base64.
func B64URL(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// DecodeB64URL decodes URL-safe base64. Padding is optional, but when present
// it must be exactly what the length calls for.
func DecodeB64URL(s string) ([]byte, error) {
	if strings.HasSuffix(s, "=") {
		return base64.URLEncoding.DecodeString(s)
	}
	return base64.RawURLEncoding.DecodeString(s)
}

// stripSpace drops whitespace that copy/paste and line-wrapped PEM bodies leave behind.
func stripSpace(s string) string { return strings.Join(strings.Fields(s), "") }
