// Package keyfetch retrieves the scheduler's public key over HTTP.
//
// The backend serves its key at GET <base>/api/public_key, either as JSON
//
//	{"public_key": "<base64 SubjectPublicKeyInfo>", "key_id": "<optional>"}
//
// or as the bare base64 text. A fetched key is cached for a configurable TTL so
// one session reuses it. Transport errors and 5xx/429 responses are retried
// with a constant backoff; other statuses and unusable keys fail immediately.
package keyfetch
