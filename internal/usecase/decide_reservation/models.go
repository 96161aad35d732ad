package decide_reservation

import (
	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// Request модель запроса на решение по заявке
type Request struct {
	Actor         domain.Actor    // Администратор из сессии
	ReservationID int64           // ID заявки
	Decision      domain.Decision // approve или deny
	Notes         *string         // Комментарий администратора (опционально)
}
