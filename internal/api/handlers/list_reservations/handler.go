package list_reservations

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservation/internal/api/middleware"
	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
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

// Handle GET /api/v1/reservations?scope=mine|all[&date=YYYY-MM-DD][&status=pending][&roomId=1]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	req, err := parseRequest(r, actor)
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid query: user_id=%d, error=%v", actor.ID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /reservations - Failed to list reservations: user_id=%d, error=%v", actor.ID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func parseRequest(r *http.Request, actor domain.Actor) (*models.ListRequest, error) {
	req := &models.ListRequest{
		Actor:  actor,
		Scope:  domain.ReservationScope(r.URL.Query().Get("scope")),
		Status: handlers.QueryOptional(r, "status"),
	}

	if raw := handlers.QueryOptional(r, "date"); raw != nil {
		date, err := handlers.ParseDate("date", *raw)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if raw := handlers.QueryOptional(r, "roomId"); raw != nil {
		roomID, err := strconv.ParseInt(*raw, 10, 64)
		if err != nil || roomID <= 0 {
			return nil, domain.NewValidationError("roomId", "must be a positive integer")
		}
		req.RoomID = &roomID
	}

	return req, nil
}
