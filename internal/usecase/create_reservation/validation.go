package create_reservation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// validateRequest валидирует входные данные запроса до любых обращений к хранилищу
func validateRequest(req *Request) error {
	if !req.Actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}

	if req.RoomID <= 0 {
		return domain.NewValidationError("roomId", "is required")
	}

	if req.Date.IsZero() {
		return domain.NewValidationError("date", "is required")
	}

	if req.StartTime.IsZero() {
		return domain.NewValidationError("startTime", "is required")
	}
	if err := req.StartTime.Validate(); err != nil {
		return domain.NewValidationError("startTime", "must be HH:MM")
	}

	if req.EndTime.IsZero() {
		return domain.NewValidationError("endTime", "is required")
	}
	if err := req.EndTime.Validate(); err != nil {
		return domain.NewValidationError("endTime", "must be HH:MM")
	}

	// Интервал полуоткрытый, нулевая длина не допускается
	if !req.StartTime.IsBefore(req.EndTime) {
		return domain.NewValidationError("endTime", "must be after startTime")
	}

	req.Purpose = strings.TrimSpace(req.Purpose)
	req.Program = strings.TrimSpace(req.Program)
	req.Section = strings.TrimSpace(req.Section)

	if req.Purpose == "" {
		return domain.NewValidationError("purpose", "is required")
	}

	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"purpose", req.Purpose, domain.MaxPurposeLength},
		{"program", req.Program, domain.MaxProgramLength},
		{"section", req.Section, domain.MaxSectionLength},
	} {
		if utf8.RuneCountInString(f.value) > f.max {
			return domain.NewValidationError(f.name, fmt.Sprintf("must be at most %d characters", f.max))
		}
	}

	return nil
}
