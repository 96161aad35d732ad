package get_reservation

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
)

// ReservationService чтение бронирований
type ReservationService interface {
	Get(ctx context.Context, actor domain.Actor, id int64) (*models.ReservationResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
