package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	DeletePending(ctx context.Context, id int64) error
}

// StaleMarker получает сигнал, что представления на дату устарели
type StaleMarker interface {
	MarkStale(ctx context.Context, date time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
