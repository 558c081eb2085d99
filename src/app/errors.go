package app

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds the handlers translate to HTTP statuses. Services wrap
// these with context, callers match with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
)

// UnknownRecipientsError rejects a share request naming every email that
// does not resolve to an account. Sharing is all-or-nothing.
type UnknownRecipientsError struct {
	Emails []string
}

func (e *UnknownRecipientsError) Error() string {
	return fmt.Sprintf("users not found: %s", strings.Join(e.Emails, ", "))
}

func (e *UnknownRecipientsError) Unwrap() error { return ErrInvalidInput }

// PartialFailureError reports a cascade that stopped partway. Applied
// carries how many records were transitioned before the failure; both
// sides of the cascade check current state, so re-running it is safe.
type PartialFailureError struct {
	Op      string
	Applied int64
	Err     error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: cascade incomplete after %d records: %v", e.Op, e.Applied, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
