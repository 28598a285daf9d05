package magtifun

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrAuthenticationFailure is returned when the site rejects a username/password.
	ErrAuthenticationFailure = errors.New("magtifun: invalid credentials")
	// ErrAuthenticationExpired is returned when a session token stopped being
	// accepted in the middle of an operation.
	ErrAuthenticationExpired = errors.New("magtifun: session is not logged in")
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("magtifun: unexpected page structure")
	// ErrUpstreamUnavailable matches every *UpstreamError.
	ErrUpstreamUnavailable = errors.New("magtifun: site unavailable")
)

// ParseError means a page did not have the structure a parser expects, either
// the markup changed or the site answered with something else (an error page,
// a redirect to the login form).
type ParseError struct {
	Page   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("magtifun: parse %s: %s", e.Page, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func parseErrorf(page, format string, args ...any) error {
	return &ParseError{Page: page, Reason: fmt.Sprintf(format, args...)}
}

// UpstreamError wraps a network failure or timeout while talking to the site.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("magtifun: %s: %s", e.Op, e.Err.Error())
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// Retryable is always true, the request can be repeated as is.
func (e *UpstreamError) Retryable() bool {
	return true
}

func (e *UpstreamError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// HTTPStatus maps an error returned by Client onto the status an API in
// front of it should answer with. Site internals never leak through it.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrAuthenticationFailure), errors.Is(err, ErrAuthenticationExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrParse), errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errUnexpectedStatus string

func (e errUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status %q", string(e))
}
