package users

import (
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

var (
	// ErrInvalidCredentials неверное имя пользователя или пароль
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthenticated)

	// ErrUsernameTaken имя пользователя уже занято
	ErrUsernameTaken = domain.NewValidationError("username", "is already taken")

	// ErrUserNotFound пользователь из сессии не найден
	ErrUserNotFound = fmt.Errorf("%w: user", domain.ErrNotFound)

	// ErrAdminOnly список пользователей доступен только администратору
	ErrAdminOnly = fmt.Errorf("%w: only administrators can list users", domain.ErrForbidden)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: users: store error", domain.ErrUnavailable)
)
