package withdraw_reservation

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// ReservationService отзыв заявок
type ReservationService interface {
	Withdraw(ctx context.Context, actor domain.Actor, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
