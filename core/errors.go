package core

import (
	"fmt"
	"strings"
)

// ValidationError rejects client-side input before it is submitted. It is
// shown inline next to the offending form and never reaches the server.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// PermissionError rejects an operation the current actor may not perform.
type PermissionError struct {
	Op string
}

func (e *PermissionError) Error() string {
	return e.Op
}

// BusinessError is a structured error the server chose to report. It is
// recognized only when the error body carries the known origin marker;
// anything else from the facade is a TransportError.
type BusinessError struct {
	Origin  string `json:"origin"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *BusinessError) Error() string {
	return e.Message
}

// TransportError covers network failures, timeouts, bad status codes and
// malformed response prefixes. It is routed to the generic HandleError path
// and never retried automatically.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("server request failed (%d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("server request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AccessDeniedError reports that a view or tab gate rejected entry. Fatal to
// the navigation attempt, not to the application.
type AccessDeniedError struct {
	View  string
	Email string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied for user %q to view %q", e.Email, e.View)
}

// SessionInvalidError reports that the identity disappeared while a session
// was active. The application restarts; this is intentionally not
// recoverable in place.
type SessionInvalidError struct {
	Email string
}

func (e *SessionInvalidError) Error() string {
	return "your session has expired, please sign in again"
}
