package api

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnauthorized indicates the bearer credential was missing, expired
// or rejected. The caller routes the learner back to login.
var ErrUnauthorized = errors.New("unauthorized")

// RequestError indicates the request never produced an HTTP response:
// dial failure, timeout, connection reset. Always retryable.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError indicates the backend answered with a non-2xx status.
// RetryAfter is populated from the Retry-After header when present.
type StatusError struct {
	Op         string
	Code       int
	Message    string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.Code)
}

// PayloadError indicates the backend sent a body that failed schema
// validation or JSON decoding. Not retryable: the same payload would
// fail again.
type PayloadError struct {
	Op  string
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: bad payload: %v", e.Op, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// Retryable reports whether err is worth retrying: transport failures
// always, server-side statuses (429 and 5xx) too, everything else not.
func Retryable(err error) bool {
	var req *RequestError
	if errors.As(err, &req) {
		return true
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Code == 429 || status.Code >= 500
	}
	return false
}
