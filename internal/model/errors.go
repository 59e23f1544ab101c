package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them so callers can
// classify with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	// ErrRetryable marks a storage failure (serialization, deadlock) that
	// left no effect and may be retried by the caller.
	ErrRetryable = errors.New("retryable storage failure")
)

var (
	ErrEventNotFound    = kindError{ErrNotFound, "event not found"}
	ErrBookingNotFound  = kindError{ErrNotFound, "booking not found"}
	ErrVenueNotFound    = kindError{ErrNotFound, "venue not found"}
	ErrCategoryNotFound = kindError{ErrNotFound, "category not found"}

	ErrEventClosed           = kindError{ErrConflict, "event closed"}
	ErrDuplicateBooking      = kindError{ErrConflict, "a booking with this email already exists for this event"}
	ErrVenueExists           = kindError{ErrConflict, "venue already exists"}
	ErrCategoryExists        = kindError{ErrConflict, "category already exists"}
	ErrCapacityBelowReserved = kindError{ErrConflict, "capacity_total is below reserved places"}

	ErrInvalidQuantity = kindError{ErrValidation, "qty must be a positive integer"}
	ErrInvalidID       = kindError{ErrValidation, "invalid id"}
	ErrEmptyPatch      = kindError{ErrValidation, "no fields to update"}
)

type kindError struct {
	kind error
	msg  string
}

func (e kindError) Error() string { return e.msg }
func (e kindError) Unwrap() error { return e.kind }

// CapacityError reports a reservation that does not fit in the event.
type CapacityError struct {
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("only %d available", e.Available)
}

func (e *CapacityError) Unwrap() error { return ErrConflict }

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
