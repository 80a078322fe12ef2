// Package memzero wipes key material held in byte slices.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites each buffer with zeros in a constant-time friendly way.
//
// This is best-effort: copies the runtime already made (string conversions,
// append growth) are out of reach.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
		runtime.KeepAlive(b)
	}
}
