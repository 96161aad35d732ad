package list_reservations

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
)

// ReservationService чтение бронирований
type ReservationService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
