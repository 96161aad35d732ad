package conflicts

import (
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

var (
	// ErrLookupFailed возвращается, когда не удалось прочитать бронирования из хранилища
	ErrLookupFailed = fmt.Errorf("%w: conflicts: reservation lookup failed", domain.ErrUnavailable)
)
