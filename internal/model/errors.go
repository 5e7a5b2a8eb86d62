package model

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotSignedIn is returned when an operation needs a stored session.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrMissingCredentials is returned by login when email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrTimeout is wrapped by TransportError when a request exceeds its deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrSessionExpired is returned when saving a session whose token already
	// expired.
	ErrSessionExpired = errors.New("session token has expired")
	// ErrDisposed is returned by a data cache after Dispose.
	ErrDisposed = errors.New("data cache disposed")
)

// APIError is returned when the server answered with a non-2xx status, or with
// a 2xx envelope carrying an error message.
type APIError struct {
	Status  int
	Message string
	Body    any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// NotFound reports whether the server answered 404.
func (e *APIError) NotFound() bool { return e.Status == http.StatusNotFound }

// Unauthorized reports whether the server rejected the credentials.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// TransportError is returned when no response was obtained.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
