package booking

import (
	"errors"
	"fmt"
)

// ErrSpotNotBookable is returned when the target spot is not approved,
// marked unavailable, or closed on the requested date.
var ErrSpotNotBookable = errors.New("spot is not bookable")

// ErrSlotUnavailable is returned when the requested window does not sit
// inside any currently free declared slot.
var ErrSlotUnavailable = errors.New("requested window is not within an available slot")

// ValidationError reports a caller-supplied field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
