package workflow

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the caller does not own the target spot
// or lacks the admin role.
var ErrUnauthorized = errors.New("caller is not authorized for this operation")

// ErrInvalidState is returned when approving or rejecting a request that
// has already been reviewed.
var ErrInvalidState = errors.New("request has already been reviewed")

// ValidationError reports a request payload field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
