package get_available_rooms

import (
	"net/http"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	getAvailableRooms "github.com/m04kA/SMC-LabReservation/internal/usecase/get_available_rooms"
)

type Handler struct {
	useCase GetAvailableRoomsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/available?date=YYYY-MM-DD[&startTime=HH:MM&endTime=HH:MM]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /rooms/available - Invalid query: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /rooms/available - Failed to compute availability: %v", err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func parseRequest(r *http.Request) (*getAvailableRooms.Request, error) {
	date, err := handlers.ParseDate("date", r.URL.Query().Get("date"))
	if err != nil {
		return nil, err
	}

	req := &getAvailableRooms.Request{Date: date}

	if raw := handlers.QueryOptional(r, "startTime"); raw != nil {
		start, err := handlers.ParseTime("startTime", *raw)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	if raw := handlers.QueryOptional(r, "endTime"); raw != nil {
		end, err := handlers.ParseTime("endTime", *raw)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}
