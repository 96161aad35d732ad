package withdraw_reservation

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

// Handle DELETE /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	if err := h.service.Withdraw(r.Context(), actor, id); err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("DELETE /reservations/{id} - Failed to withdraw: reservation_id=%d, error=%v", id, err)
		} else {
			h.logger.Warn("DELETE /reservations/{id} - Rejected: reservation_id=%d, user_id=%d, error=%v", id, actor.ID, err)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation withdrawn: reservation_id=%d, user_id=%d", id, actor.ID)
	handlers.RespondNoContent(w)
}
