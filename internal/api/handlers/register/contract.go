package register

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/service/users/models"
)

// UserService регистрация учётных записей
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.SessionResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
