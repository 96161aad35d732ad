package decide_reservation

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
	decideReservation "github.com/m04kA/SMC-LabReservation/internal/usecase/decide_reservation"
)

type DecideReservationUseCase interface {
	Execute(ctx context.Context, req *decideReservation.Request) (*models.ReservationResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
