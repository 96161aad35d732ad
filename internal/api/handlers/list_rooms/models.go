package list_rooms

import "github.com/m04kA/SMC-LabReservation/internal/domain"

// RoomResponse HTTP response model
type RoomResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// RoomListResponse HTTP response model
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// FromDomainRooms конвертирует каталог в HTTP response
func FromDomainRooms(rooms []*domain.Room) *RoomListResponse {
	resp := &RoomListResponse{Rooms: make([]RoomResponse, 0, len(rooms))}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, RoomResponse{ID: r.ID, Name: r.Name, Capacity: r.Capacity})
	}
	return resp
}
