package refresh

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// RoomRepository источник каталога аудиторий
type RoomRepository interface {
	ListActive(ctx context.Context) ([]*domain.Room, error)
}

// ReservationRepository источник бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// Notifier рассылает сигнал об устаревшей дате другим экземплярам сервиса
type Notifier interface {
	Publish(ctx context.Context, date time.Time) error
	Subscribe(ctx context.Context, onStale func(date time.Time)) error
	Close() error
}

// Metrics счётчики обновлений
type Metrics interface {
	RefreshCompleted(trigger string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
