package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxPurposeLength       = 200
	MaxProgramLength       = 100
	MaxSectionLength       = 50
	MaxDecisionNotesLength = 500
	MinPasswordLength      = 8
	MaxUsernameLength      = 64
)

// ActiveStatuses statuses that hold a slot and count toward conflicts and availability
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
}

// DecidedStatuses terminal statuses
var DecidedStatuses = []ReservationStatus{
	StatusApproved,
	StatusDenied,
}
