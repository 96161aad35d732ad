package list_users

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/users/models"
)

// UserService список пользователей для администратора
type UserService interface {
	ListUsers(ctx context.Context, actor domain.Actor) (*models.UserListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
