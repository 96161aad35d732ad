package me

import (
	"context"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/users/models"
)

// UserService данные текущего пользователя
type UserService interface {
	Me(ctx context.Context, actor domain.Actor) (*models.UserResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
