package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the
// store. The orchestrator recovers by creating a fresh session.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSelection is returned when a token is unknown or stale. It is
// surfaced to the caller; the current menu is re-shown.
var ErrInvalidSelection = errors.New("invalid selection")

// ErrCollaboratorUnavailable marks a timeout or failure of an external
// reasoning/research/provider call. It never reaches the caller raw; the
// component that sees it takes its fallback path.
var ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

// InvalidParamsError signals a caller/worker contract violation, e.g. a
// search invoked without a destination. Fatal for that call only; surfaced
// as a clarification, never as a crash.
type InvalidParamsError struct {
	Field  string
	Reason string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid params: %s %s", e.Field, e.Reason)
}

// IsInvalidParams reports whether err is an InvalidParamsError.
func IsInvalidParams(err error) bool {
	var ipe *InvalidParamsError
	return errors.As(err, &ipe)
}
