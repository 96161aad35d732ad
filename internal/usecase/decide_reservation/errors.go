package decide_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

var (
	// ErrNotAdmin возвращается, когда решение пытается принять не администратор
	ErrNotAdmin = fmt.Errorf("%w: only administrators can decide reservations", domain.ErrForbidden)

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("%w: reservation", domain.ErrNotFound)

	// ErrAlreadyProcessed возвращается, когда решение по заявке уже принято
	ErrAlreadyProcessed = domain.ErrInvalidState

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: decide_reservation: store error", domain.ErrUnavailable)
)
