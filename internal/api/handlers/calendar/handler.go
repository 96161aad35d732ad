package calendar

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
)

const msgDateRequired = "date is required"

type Handler struct {
	source SnapshotSource
	logger Logger
}

func NewHandler(source SnapshotSource, logger Logger) *Handler {
	return &Handler{
		source: source,
		logger: logger,
	}
}

// Handle GET /api/v1/calendar?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := handlers.QueryOptional(r, "date")
	if raw == nil {
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}

	date, err := handlers.ParseDate("date", *raw)
	if err != nil {
		handlers.RespondDomainError(w, err)
		return
	}

	snapshot, err := h.source.Day(r.Context(), date)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /calendar - Failed to load day: date=%s, error=%v", *raw, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(snapshot))
}
