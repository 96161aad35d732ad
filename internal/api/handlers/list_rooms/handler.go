package list_rooms

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListActiveRooms(r.Context())
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainRooms(rooms))
}
