package get_available_rooms

import (
	"time"

	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

// Request модель запроса доступности.
// Без StartTime/EndTime считается общая доступность на дату.
type Request struct {
	Date      time.Time         // Дата (без времени)
	StartTime *types.TimeString // Начало окна (опционально, вместе с EndTime)
	EndTime   *types.TimeString // Конец окна (опционально, вместе со StartTime)
}

// Response модель ответа со свободными аудиториями
type Response struct {
	Date      string     `json:"date"`
	StartTime *string    `json:"startTime,omitempty"`
	EndTime   *string    `json:"endTime,omitempty"`
	Rooms     []RoomInfo `json:"rooms"`
	Version   *uint64    `json:"version,omitempty"` // Версия снимка для общей доступности
}

// RoomInfo свободная аудитория
type RoomInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}
