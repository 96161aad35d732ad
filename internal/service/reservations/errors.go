package reservations

import (
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("%w: reservation", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrCannotWithdraw возвращается, когда по заявке уже принято решение
	ErrCannotWithdraw = fmt.Errorf("%w: reservation can no longer be withdrawn", domain.ErrInvalidState)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: reservations: store error", domain.ErrUnavailable)
)
