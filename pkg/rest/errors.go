package rest

import (
	"errors"
	"fmt"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrBadRequest   = errors.New("discord: bad request")
	ErrUnauthorized = errors.New("discord: invalid or missing token")
	ErrForbidden    = errors.New("discord: missing access")
	ErrNotFound     = errors.New("discord: resource not found")
	ErrRateLimited  = errors.New("discord: rate limited")
	ErrServerError  = errors.New("discord: internal server error (5xx)")
	ErrBadResponse  = errors.New("discord: malformed response")
	ErrUnavailable  = errors.New("discord: host unreachable or transport failure")
)

// APIError wraps a sentinel with the context of the failed call, including
// the JSON error code Discord returns alongside the HTTP status.
type APIError struct {
	Sentinel  error
	Operation string
	Status    int
	Code      int
	Message   string
	Err       error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("rest: %s: %v", e.Operation, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Code > 0 {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Sentinel
}

func sentinelForStatus(status int) error {
	switch {
	case status == 400:
		return ErrBadRequest
	case status == 401:
		return ErrUnauthorized
	case status == 403:
		return ErrForbidden
	case status == 404:
		return ErrNotFound
	case status == 429:
		return ErrRateLimited
	case status >= 500:
		return ErrServerError
	default:
		return ErrBadResponse
	}
}
