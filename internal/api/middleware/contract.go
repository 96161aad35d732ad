package middleware

import (
	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// TokenParser проверяет токен сессии
type TokenParser interface {
	Parse(token string) (domain.Actor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
