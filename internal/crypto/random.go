package crypto

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"paramseal/internal/domain"
	"paramseal/internal/util/memzero"
)

// DefaultRandom returns the platform CSPRNG.
func DefaultRandom() io.Reader { return rand.Reader }

// ReadRandom fills b from r. A nil reader, a read error or a short read all
// fail with domain.ErrRandomnessUnavailable and leave b zeroed.
func ReadRandom(r io.Reader, b []byte) error {
	if r == nil {
		return errors.Wrap(domain.ErrRandomnessUnavailable, "no random source")
	}
	if _, err := io.ReadFull(r, b); err != nil {
		memzero.Zero(b)
		return errors.Wrapf(domain.ErrRandomnessUnavailable, "read %d bytes: %v", len(b), err)
	}
	return nil
}
