package create_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservation/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingActor       = "authentication required"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch status := handlers.RespondDomainError(w, err); {
		case status >= http.StatusInternalServerError:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, room_id=%d, error=%v",
				actor.ID, req.RoomID, err)
		case status == http.StatusConflict:
			h.logger.Warn("POST /reservations - Slot taken: user_id=%d, room_id=%d, %s %s-%s",
				actor.ID, req.RoomID, req.Date, req.StartTime, req.EndTime)
		default:
			h.logger.Warn("POST /reservations - Rejected: user_id=%d, error=%v", actor.ID, err)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, room_id=%d",
		result.ID, actor.ID, result.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
