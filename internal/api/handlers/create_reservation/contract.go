package create_reservation

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-LabReservation/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*models.ReservationResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
