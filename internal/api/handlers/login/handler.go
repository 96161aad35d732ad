package login

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

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("POST /auth/login - Failed to sign in: error=%v", err)
		} else {
			h.logger.Warn("POST /auth/login - Rejected: username=%s", req.Username)
		}
		return
	}

	h.logger.Info("POST /auth/login - Signed in: user_id=%d", session.User.ID)
	handlers.RespondJSON(w, http.StatusOK, session)
}
