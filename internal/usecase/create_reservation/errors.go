package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

var (
	// ErrRoomNotFound возвращается, когда аудитория не существует или неактивна
	ErrRoomNotFound = domain.NewValidationError("roomId", "does not reference an active room")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: create_reservation: store error", domain.ErrUnavailable)
)
