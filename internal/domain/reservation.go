package domain

import (
	"time"

	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

// ReservationStatus represents the approval state of a reservation
type ReservationStatus string

const (
	StatusPending  ReservationStatus = "pending"
	StatusApproved ReservationStatus = "approved"
	StatusDenied   ReservationStatus = "denied"
)

// Decision is an administrator verdict on a pending reservation
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDeny    Decision = "deny"
)

// TargetStatus returns the terminal status the decision leads to
func (d Decision) TargetStatus() (ReservationStatus, bool) {
	switch d {
	case DecisionApprove:
		return StatusApproved, true
	case DecisionDeny:
		return StatusDenied, true
	default:
		return "", false
	}
}

// Reservation is a requested or decided booking of one room for one date and time window
type Reservation struct {
	ID          int64
	RoomID      int64
	RoomName    string // display snapshot joined from rooms, never stored
	RequesterID int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Purpose     string
	Program     string
	Section     string
	Status      ReservationStatus

	DecisionNotes *string
	DecidedBy     *int64
	DecidedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation blocks its slot (pending or approved)
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// IsTerminal returns true once an administrator has decided the reservation
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusDenied
}

// CanTransitionTo reports whether the state machine allows moving to target.
// Only pending -> approved and pending -> denied exist.
func (r *Reservation) CanTransitionTo(target ReservationStatus) bool {
	return r.Status == StatusPending && (target == StatusApproved || target == StatusDenied)
}

// CanBeWithdrawn returns true while no decision has been made
func (r *Reservation) CanBeWithdrawn() bool {
	return r.Status == StatusPending
}

// OverlapsWith reports whether both reservations hold the same room on the same date
// with intersecting time windows
func (r *Reservation) OverlapsWith(other *Reservation) bool {
	return r.RoomID == other.RoomID &&
		SameDate(r.Date, other.Date) &&
		Overlaps(r.StartTime, r.EndTime, other.StartTime, other.EndTime)
}

// Overlaps is the half-open interval test for [aStart, aEnd) and [bStart, bEnd).
// Touching intervals (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// SameDate reports whether two timestamps fall on the same calendar date
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReservationScope selects whose reservations a listing returns
type ReservationScope string

const (
	ScopeMine ReservationScope = "mine"
	ScopeAll  ReservationScope = "all"
)

// ReservationFilter фильтр для выборки бронирований
type ReservationFilter struct {
	RoomID      *int64             // Фильтр по аудитории (опционально)
	RequesterID *int64             // Только заявки пользователя (опционально)
	Date        *time.Time         // Конкретная дата (опционально)
	Status      *ReservationStatus // Конкретный статус (опционально)
	ActiveOnly  bool               // Только pending и approved
	DecidedOnly bool               // Только approved и denied, сортировка по времени решения
}

// DecisionRecord holds the data written by an administrator decision
type DecisionRecord struct {
	Status    ReservationStatus
	DecidedBy int64
	Notes     *string
	DecidedAt time.Time
}
