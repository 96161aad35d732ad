package decide_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservation/internal/api/middleware"
	"github.com/m04kA/SMC-LabReservation/internal/domain"
	decideReservation "github.com/m04kA/SMC-LabReservation/internal/usecase/decide_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingActor       = "authentication required"
)

// DecisionRequest HTTP request model
type DecisionRequest struct {
	Decision string  `json:"decision"` // approve | deny
	Notes    *string `json:"notes,omitempty"`
}

type Handler struct {
	useCase DecideReservationUseCase
	logger  Logger
}

func NewHandler(useCase DecideReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{id}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	// Роль проверяется до разбора запроса
	if !actor.IsAdmin() {
		h.logger.Warn("PUT /reservations/{id}/decision - Not an admin: user_id=%d", actor.ID)
		handlers.RespondDomainError(w, decideReservation.ErrNotAdmin)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /reservations/{id}/decision - Invalid reservation ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	var body DecisionRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /reservations/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &decideReservation.Request{
		Actor:         actor,
		ReservationID: id,
		Decision:      domain.Decision(body.Decision),
		Notes:         body.Notes,
	})
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("PUT /reservations/{id}/decision - Failed to record decision: reservation_id=%d, error=%v", id, err)
		} else {
			h.logger.Warn("PUT /reservations/{id}/decision - Rejected: reservation_id=%d, user_id=%d, error=%v", id, actor.ID, err)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id}/decision - Decision recorded: reservation_id=%d, status=%s, admin_id=%d",
		id, result.Status, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
