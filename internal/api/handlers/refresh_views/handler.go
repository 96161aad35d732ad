package refresh_views

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservation/internal/api/middleware"
	"github.com/m04kA/SMC-LabReservation/internal/service/refresh"
)

// RefreshResponse версия данных после обновления
type RefreshResponse struct {
	Version uint64 `json:"version"`
}

type Handler struct {
	refresher Refresher
	logger    Logger
}

func NewHandler(refresher Refresher, logger Logger) *Handler {
	return &Handler{
		refresher: refresher,
		logger:    logger,
	}
}

// Handle POST /api/v1/refresh
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.refresher.Refresh(r.Context(), refresh.TriggerManual); err != nil {
		h.logger.Error("POST /refresh - Manual refresh failed: request_id=%s, error=%v", middleware.GetRequestID(r.Context()), err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, RefreshResponse{Version: h.refresher.State().Version})
}
