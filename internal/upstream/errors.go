package upstream

import (
	"errors"
	"net/url"
)

// Sentinel errors for upstream calls.
var (
	// ErrTransport wraps failures to reach the upstream or read its response.
	ErrTransport = errors.New("upstream transport error")
	// ErrDecode wraps upstream bodies that are not valid JSON.
	ErrDecode = errors.New("upstream response is not valid JSON")
	// ErrNotConfigured is returned when the client has no credential.
	ErrNotConfigured = errors.New("upstream credential not configured")
)

// Cause returns a short description of err suitable for a caller-facing message.
// For transport errors it drops the request URL that net/http prefixes.
func Cause(err error) string {
	if err == nil {
		return ""
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err.Error()
	}
	var inner interface{ Unwrap() []error }
	if errors.As(err, &inner) {
		for _, e := range inner.Unwrap() {
			if !errors.Is(e, ErrTransport) && !errors.Is(e, ErrDecode) {
				return e.Error()
			}
		}
	}
	return err.Error()
}
