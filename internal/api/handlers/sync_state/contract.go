package sync_state

import (
	"github.com/m04kA/SMC-LabReservation/internal/service/refresh"
)

// StateSource версия данных и расписание обновлений
type StateSource interface {
	State() refresh.State
}
