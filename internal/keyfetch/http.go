package keyfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// maxBodySize bounds what we read from the key endpoint. A 4096-bit SPKI in
// base64 is well under 1 KiB.
const maxBodySize = 64 << 10

// RequestIDHeader carries a per-attempt request ID for correlating backend logs.
const RequestIDHeader = "X-Request-ID"

// statusError is a non-2xx response from the key endpoint.
type statusError struct {
	URL    string
	Status string
	Code   int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("get %s: %s", e.URL, e.Status)
}

// retryable reports whether a status is worth another attempt.
func retryable(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}

// get performs one GET of path and returns the body. Errors that another
// attempt cannot fix are wrapped in backoff.Permanent.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u := strings.TrimRight(c.base, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "build request"))
	}
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set(RequestIDHeader, uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, errors.Wrapf(err, "get %s", u)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		serr := &statusError{URL: u, Status: resp.Status, Code: resp.StatusCode}
		if retryable(resp.StatusCode) {
			return nil, serr
		}
		return nil, backoff.Permanent(serr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	return body, nil
}
