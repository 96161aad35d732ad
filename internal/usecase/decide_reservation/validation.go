package decide_reservation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// validateRequest проверяет права и входные данные. Роль проверяется первой:
// не-администратор получает Forbidden независимо от содержимого запроса.
func validateRequest(req *Request) error {
	if !req.Actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}

	if !req.Actor.IsAdmin() {
		return ErrNotAdmin
	}

	if req.ReservationID <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}

	if _, ok := req.Decision.TargetStatus(); !ok {
		return domain.NewValidationError("decision", "must be approve or deny")
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if notes == "" {
			req.Notes = nil
		} else {
			if utf8.RuneCountInString(notes) > domain.MaxDecisionNotesLength {
				return domain.NewValidationError("notes", fmt.Sprintf("must be at most %d characters", domain.MaxDecisionNotesLength))
			}
			req.Notes = &notes
		}
	}

	return nil
}
