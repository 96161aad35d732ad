package auth

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

var (
	// ErrInvalidToken токен отсутствует, подделан, просрочен или содержит неизвестную роль
	ErrInvalidToken = fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)

	// ErrSignToken ошибка подписи токена
	ErrSignToken = errors.New("auth: failed to sign token")
)
