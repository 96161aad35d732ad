package list_rooms

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// RoomService каталог аудиторий
type RoomService interface {
	ListActiveRooms(ctx context.Context) ([]*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
