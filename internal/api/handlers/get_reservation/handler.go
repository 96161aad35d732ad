package get_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservation/internal/api/middleware"
)

const msgMissingActor = "authentication required"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	// Сервис сам проверит права доступа
	reservation, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /reservations/{id} - Failed to get reservation: reservation_id=%d, error=%v", id, err)
		} else {
			h.logger.Warn("GET /reservations/{id} - Rejected: reservation_id=%d, user_id=%d, error=%v", id, actor.ID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, reservation)
}
