// Package envelope seals a secret parameter value for the scheduler backend.
//
// A sealed value is produced in four steps: a fresh token.Secret is drawn, the
// cleartext is encoded as a token under it, the secret's text form is wrapped
// to the recipient RSA key, and both parts are framed as
//
//	base64( {"key": base64(wrapped), "payload": token} )
//
// The frame carries no algorithm identifiers. Open is the recipient side of
// the same contract.
package envelope
