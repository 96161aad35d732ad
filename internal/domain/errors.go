package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

var (
	// ErrValidation malformed input, rejected before any store interaction
	ErrValidation = errors.New("validation error")

	// ErrConflict the requested slot overlaps an active reservation
	ErrConflict = errors.New("reservation conflict")

	// ErrForbidden the actor's role does not allow the operation
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState the reservation has already been decided
	ErrInvalidState = errors.New("reservation already processed")

	// ErrUnavailable the backing store or identity service cannot be reached
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnauthenticated there is no valid session
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound the referenced record does not exist
	ErrNotFound = errors.New("not found")
)

// ValidationError names the offending field
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a field validation error
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) hold
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError carries the colliding reservation so the user can pick another slot
type ConflictError struct {
	ReservationID int64
	RoomID        int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
}

// NewConflictError describes a collision with an existing reservation
func NewConflictError(existing *Reservation) *ConflictError {
	return &ConflictError{
		ReservationID: existing.ID,
		RoomID:        existing.RoomID,
		Date:          existing.Date,
		StartTime:     existing.StartTime,
		EndTime:       existing.EndTime,
	}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: room %d is taken on %s %s-%s by reservation %d",
		ErrConflict, e.RoomID, e.Date.Format(DateFormat), e.StartTime, e.EndTime, e.ReservationID)
}

// Is makes errors.Is(err, ErrConflict) hold
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
