package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrProviderUnavailable is returned when a decorator has no provider to call.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Provider   string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d for %s", e.Provider, e.StatusCode, e.URL)
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// IsPermanent reports whether retrying err cannot help: client errors other
// than 429 will fail the same way on every attempt.
func IsPermanent(err error) bool {
	statusErr, ok := AsStatusError(err)
	if !ok {
		return false
	}
	code := statusErr.StatusCode
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}
