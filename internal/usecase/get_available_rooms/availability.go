package get_available_rooms

import (
	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

// freeForDay аудитории без единого активного бронирования на дату
func freeForDay(rooms []*domain.Room, reservations []*domain.Reservation) []*domain.Room {
	busy := make(map[int64]struct{}, len(reservations))
	for _, r := range reservations {
		if r.IsActive() {
			busy[r.RoomID] = struct{}{}
		}
	}

	free := make([]*domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if !room.IsActive {
			continue
		}
		if _, taken := busy[room.ID]; !taken {
			free = append(free, room)
		}
	}
	return free
}

// freeForWindow аудитории, в которых ни одно активное бронирование не пересекает [start, end)
func freeForWindow(rooms []*domain.Room, reservations []*domain.Reservation, start, end types.TimeString) []*domain.Room {
	busy := make(map[int64]struct{})
	for _, r := range reservations {
		if r.IsActive() && domain.Overlaps(start, end, r.StartTime, r.EndTime) {
			busy[r.RoomID] = struct{}{}
		}
	}

	free := make([]*domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if !room.IsActive {
			continue
		}
		if _, taken := busy[room.ID]; !taken {
			free = append(free, room)
		}
	}
	return free
}
