package get_available_rooms

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/refresh"
)

// SnapshotSource снимки на дату для общей доступности
type SnapshotSource interface {
	Day(ctx context.Context, date time.Time) (*refresh.DaySnapshot, error)
}

// RoomRepository источник актуального каталога
type RoomRepository interface {
	ListActive(ctx context.Context) ([]*domain.Room, error)
}

// ReservationRepository источник актуальных бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
