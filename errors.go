package authclient

import (
	"errors"
	"fmt"
)

// Sentinel classes for the transport error taxonomy. Every request failure
// returned by the client wraps exactly one of these, so callers classify
// with errors.Is regardless of the concrete *APIError carried.
var (
	// ErrValidation is the class for 400 responses: malformed input the
	// server rejected. Never retried.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is the class for 401 responses that survived the
	// refresh-and-retry protocol.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is the class for 403 responses. The session stays
	// intact: lacking permission is not the same as being expired.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is the class for 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrConflict is the class for 409 responses, e.g. an email or
	// username already taken during registration.
	ErrConflict = errors.New("conflict")
	// ErrServer is the class for 5xx responses.
	ErrServer = errors.New("server error")
	// ErrNetwork is the class for requests that produced no response at
	// all: offline, DNS failure, timeout. Never retried automatically.
	ErrNetwork = errors.New("network error")
	// ErrSessionExpired is returned when a refresh is needed but no
	// refresh token exists, or by [Client.RefreshTokens] when the refresh
	// call itself is rejected. It always coincides with a cleared session.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotInitialized is returned by Client methods invoked on a nil
	// client.
	ErrNotInitialized = errors.New("client not initialized")
)

// APIError is a single failed request: the HTTP status (0 when no response
// was received), the server's message when one was provided, and the
// taxonomy class reachable through Unwrap.
type APIError struct {
	Status  int
	Message string
	class   error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("authclient: %s", e.Message)
	}
	return fmt.Sprintf("authclient: %s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.class
}

func newAPIError(status int, message string) *APIError {
	if message == "" {
		message = defaultMessage(status)
	}
	return &APIError{
		Status:  status,
		Message: message,
		class:   classify(status),
	}
}

func newNetworkError(err error) *APIError {
	return &APIError{
		Status:  0,
		Message: "Network error. Please check your connection.",
		class:   errors.Join(ErrNetwork, err),
	}
}

// classify maps an HTTP status onto its sentinel class.
func classify(status int) error {
	switch {
	case status == 400:
		return ErrValidation
	case status == 401:
		return ErrUnauthorized
	case status == 403:
		return ErrForbidden
	case status == 404:
		return ErrNotFound
	case status == 409:
		return ErrConflict
	case status >= 500:
		return ErrServer
	default:
		return ErrServer
	}
}

// defaultMessage supplies the user-facing text when the server body carried
// none. The wording matches what the service's own frontend shows.
func defaultMessage(status int) string {
	switch {
	case status == 400:
		return "Bad request"
	case status == 401:
		return "Unauthorized"
	case status == 403:
		return "You do not have permission to perform this action"
	case status == 404:
		return "Resource not found"
	case status == 409:
		return "Conflict with current state"
	case status >= 500:
		return "Server error. Please try again later."
	default:
		return "An unexpected error occurred"
	}
}
