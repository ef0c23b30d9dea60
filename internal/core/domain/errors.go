package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent the failure taxonomy of the client core.
// These are distinct from infrastructure errors.
var (
	// ErrNetworkUnavailable indicates the transport itself failed
	// (DNS, connection refused). A transient condition inviting retry.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrEmptyCredential indicates the token endpoint answered
	// successfully but returned no usable token.
	ErrEmptyCredential = errors.New("empty credential")

	// ErrUserCancelled indicates the picker was dismissed without a
	// selection. Not a failure, a normal terminal transition to idle.
	ErrUserCancelled = errors.New("user cancelled")

	// ErrConnectorBusy indicates a connector session of the same kind
	// is already active. Starting another is a no-op.
	ErrConnectorBusy = errors.New("connector session already active")

	// ErrAuthRedirect indicates the user was handed to the identity
	// provider; the flow resumes on the next launch via the resume
	// marker in the return URL.
	ErrAuthRedirect = errors.New("redirected for authorization")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// RequestError is a server-side rejection: the request reached the
// backend and was answered with a non-2xx status. The status is shown
// to the user, unlike transport errors.
type RequestError struct {
	// Status is the HTTP status code returned by the backend.
	Status int

	// Reason is the backend's error field, when the body carried one.
	Reason string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("request failed: %d (%s)", e.Status, e.Reason)
	}
	return fmt.Sprintf("request failed: %d", e.Status)
}

// IsRequestFailed reports whether err is a server-side rejection and
// returns it when so.
func IsRequestFailed(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// NoGrantReason is the backend's error field when the token endpoint
// has no delegated grant for the user yet.
const NoGrantReason = "not_connected"

// SignalsNoGrant reports whether err is the token endpoint telling the
// client that authorization has not happened yet. The client answers
// with a full browser redirect to the connect endpoint.
func SignalsNoGrant(err error) bool {
	re, ok := IsRequestFailed(err)
	return ok && re.Reason == NoGrantReason
}
