package calendar

import (
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/refresh"
)

// CalendarResponse занятость аудиторий на дату
type CalendarResponse struct {
	Date     string          `json:"date"`
	Version  uint64          `json:"version"`
	LoadedAt time.Time       `json:"loadedAt"`
	Entries  []CalendarEntry `json:"entries"`
}

// CalendarEntry одно активное бронирование. Заявитель и цель не раскрываются.
type CalendarEntry struct {
	ReservationID int64  `json:"reservationId"`
	RoomID        int64  `json:"roomId"`
	RoomName      string `json:"roomName"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
}

// FromSnapshot конвертирует снимок дня в ответ
func FromSnapshot(snapshot *refresh.DaySnapshot) *CalendarResponse {
	names := make(map[int64]string, len(snapshot.Rooms))
	for _, room := range snapshot.Rooms {
		names[room.ID] = room.Name
	}

	entries := make([]CalendarEntry, 0, len(snapshot.Reservations))
	for _, r := range snapshot.Reservations {
		name := r.RoomName
		if name == "" {
			name = names[r.RoomID]
		}
		entries = append(entries, CalendarEntry{
			ReservationID: r.ID,
			RoomID:        r.RoomID,
			RoomName:      name,
			StartTime:     r.StartTime.String(),
			EndTime:       r.EndTime.String(),
			Status:        string(r.Status),
		})
	}

	return &CalendarResponse{
		Date:     snapshot.Date.Format(domain.DateFormat),
		Version:  snapshot.Version,
		LoadedAt: snapshot.LoadedAt,
		Entries:  entries,
	}
}
