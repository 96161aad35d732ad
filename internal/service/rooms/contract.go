package rooms

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// RoomRepository интерфейс репозитория аудиторий
type RoomRepository interface {
	ListActive(ctx context.Context) ([]*domain.Room, error)
	Upsert(ctx context.Context, room *domain.Room) (*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
