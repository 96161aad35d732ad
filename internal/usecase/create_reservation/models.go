package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor     domain.Actor     // Заявитель из сессии
	RoomID    int64            // ID аудитории
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала, включительно
	EndTime   types.TimeString // Время окончания, не включительно
	Purpose   string           // Цель (например, "Lab exam")
	Program   string           // Программа обучения
	Section   string           // Группа
}
