package get_available_rooms

import (
	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// validateRequest проверяет дату и, если задано, окно времени
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return domain.NewValidationError("date", "is required")
	}

	if (req.StartTime == nil) != (req.EndTime == nil) {
		return domain.NewValidationError("startTime", "startTime and endTime must be given together")
	}

	if req.StartTime == nil {
		return nil
	}

	if err := req.StartTime.Validate(); err != nil {
		return domain.NewValidationError("startTime", "must be HH:MM")
	}
	if err := req.EndTime.Validate(); err != nil {
		return domain.NewValidationError("endTime", "must be HH:MM")
	}
	if !req.StartTime.IsBefore(*req.EndTime) {
		return domain.NewValidationError("endTime", "must be after startTime")
	}

	return nil
}
