package register

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservation/internal/service/users/models"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("POST /auth/register - Failed to register: username=%s, error=%v", req.Username, err)
		} else {
			h.logger.Warn("POST /auth/register - Rejected: username=%s, error=%v", req.Username, err)
		}
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%d", session.User.ID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
