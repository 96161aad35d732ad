package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	LockRoomDate(ctx context.Context, roomID int64, date time.Time) error
}

// RoomRepository интерфейс репозитория аудиторий
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// ConflictDetector поиск пересекающихся бронирований
type ConflictDetector interface {
	HasConflict(ctx context.Context, roomID int64, date time.Time, start, end types.TimeString, excludingID *int64) (*domain.Reservation, error)
}

// StaleMarker получает сигнал, что представления на дату устарели
type StaleMarker interface {
	MarkStale(ctx context.Context, date time.Time)
}

// Metrics бизнес-метрики
type Metrics interface {
	ReservationCreated()
	ConflictDetected(stage string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
