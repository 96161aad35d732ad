package login

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/service/users/models"
)

// UserService вход по паролю
type UserService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
