package get_available_rooms

import (
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

var (
	// ErrInternal возвращается, когда доступность не удалось вычислить
	ErrInternal = fmt.Errorf("%w: get_available_rooms: availability unknown", domain.ErrUnavailable)
)
