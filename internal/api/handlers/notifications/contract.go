package notifications

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
)

// ReservationService источник уведомлений о решениях
type ReservationService interface {
	Notifications(ctx context.Context, actor domain.Actor) (*models.ReservationListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
