package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/service/refresh"
)

// SnapshotSource снимок активных бронирований на дату
type SnapshotSource interface {
	Day(ctx context.Context, date time.Time) (*refresh.DaySnapshot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
