package sync_state

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
)

// StateResponse ответ клиенту, по которому он решает, когда перечитать данные
type StateResponse struct {
	Version         uint64     `json:"version"`
	LastRefreshAt   *time.Time `json:"lastRefreshAt,omitempty"`
	NextRefreshAt   *time.Time `json:"nextRefreshAt,omitempty"`
	IntervalSeconds int64      `json:"intervalSeconds"`
}

type Handler struct {
	source StateSource
}

func NewHandler(source StateSource) *Handler {
	return &Handler{source: source}
}

// Handle GET /api/v1/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	state := h.source.State()

	resp := StateResponse{
		Version:         state.Version,
		IntervalSeconds: int64(state.Interval / time.Second),
	}
	if !state.LastRefreshAt.IsZero() {
		resp.LastRefreshAt = &state.LastRefreshAt
	}
	if !state.NextRefreshAt.IsZero() {
		resp.NextRefreshAt = &state.NextRefreshAt
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
