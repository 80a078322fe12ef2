// Package testutil holds key fixtures shared by paramseal's tests.
package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"sync"
)

// FixedPublicKey is a 2048-bit SubjectPublicKeyInfo in base64, as the
// dashboard receives it. The stray space mirrors a copy/paste artefact that
// decoding must tolerate.
const FixedPublicKey = "MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAts0tCjEj+FLJrwzFaFgoeQEAZ8/tWaH2pWM5sisaxmVH/2c32fgMVBQbs5hrr/EpwHLCR+S8W3s908Ne91L+n9QCEJCesDGJRljHrINYxqa8ilhzgQIH33cMvqtvrOWh43bPQUbHVSzNY6/TTsYX9Qn6h5EwV3j02MkgFGF/4yRHuqsMNMTO8o554xzqaoVgV2EAk+GREMtt07RlUXOg e2Ty3VXiJOfHWE7kUYgFhSBtm7AQK3KOHKVsACHBi6z+nIF2uDBeBr26AP5kMab7uQp6M2h/e2VVWwr743UsZoyXEsEchYzBR6RdE32pDVmR84oOlzILj0XcYDCjH/Xq/wIDAQAB"

// SmallRSAKey1024 is a hardcoded 1024-bit RSA public key in PEM format (PKIX)
// used for testing key size validation. It is hardcoded rather than generated
// because future Go releases may refuse to generate keys this small.
const SmallRSAKey1024 = `-----BEGIN PUBLIC KEY-----
MIGfMA0GCSqGSIb3DQEBAQUAA4GNADCBiQKBgQDCNDoCM0OBt4HFxFxyU50FYsuZ
gK+lgel/Jlzb+ghkWpCL1Vk3Au7aet4KxNxQh5dFRxtMU7pe6fC5eZtdL3+0TCUu
XAUVgMhTRn3ZXlEmJXosuiFQ2y4+3nbWL51OxXRf3jsieSVqr4fbceakuOKXp4vX
wgiguV3/XqaysHs1uwIDAQAB
-----END PUBLIC KEY-----`

var (
	keyOnce sync.Once
	key     *rsa.PrivateKey
)

// RSAKey returns a process-wide 2048-bit key pair so tests don't pay for
// generation more than once.
func RSAKey() *rsa.PrivateKey {
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic("failed to generate test RSA key: " + err.Error())
		}
		key = k
	})
	return key
}

// FailingReader is a random source that always errors.
type FailingReader struct{ Err error }

func (f FailingReader) Read([]byte) (int, error) { return 0, f.Err }

// CountingReader yields a deterministic byte stream (0, 1, 2, ...) and counts bytes served.
type CountingReader struct {
	next byte
	N    int
}

func (c *CountingReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = c.next
		c.next++
	}
	c.N += len(p)
	return len(p), nil
}
