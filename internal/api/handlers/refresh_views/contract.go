package refresh_views

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/service/refresh"
)

// Refresher перечитывает снимки по запросу пользователя
type Refresher interface {
	Refresh(ctx context.Context, trigger string) error
	State() refresh.State
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
