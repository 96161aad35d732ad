package conflicts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListByRoomAndDate(ctx context.Context, roomID int64, date time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
