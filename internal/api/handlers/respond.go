package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

const (
	msgInternalError   = "internal server error"
	msgUnavailable     = "service temporarily unavailable, try again later"
	msgUnauthenticated = "authentication required"
	msgForbidden       = "access denied"
	msgNotFound        = "not found"
	msgConflict        = "the requested slot is already taken"
	msgAlreadyDecided  = "already processed"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ConflictDetails занятый слот, из-за которого заявка отклонена
type ConflictDetails struct {
	ReservationID int64  `json:"reservationId"`
	RoomID        int64  `json:"roomId"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

// DecodeJSON разбирает тело запроса, запрещая неизвестные поля
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON-ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondNoContent отправляет пустой ответ 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет ошибку с произвольным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError переводит ошибку доменной таксономии в HTTP-ответ и возвращает статус.
//
//	ValidationError  -> 400 (с именем поля)
//	Unauthenticated  -> 401
//	Forbidden        -> 403
//	NotFound         -> 404
//	ConflictError    -> 409 (с занятым слотом)
//	InvalidState     -> 409 "already processed"
//	Unavailable      -> 503
//	остальное        -> 500
func RespondDomainError(w http.ResponseWriter, err error) int {
	var validationErr *domain.ValidationError
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &validationErr):
		RespondJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("%s %s", validationErr.Field, validationErr.Reason),
			Field:   validationErr.Field,
		})
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, err.Error())
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrUnauthenticated):
		RespondUnauthorized(w, msgUnauthenticated)
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrForbidden):
		RespondForbidden(w, msgForbidden)
		return http.StatusForbidden

	case errors.Is(err, domain.ErrNotFound):
		RespondNotFound(w, msgNotFound)
		return http.StatusNotFound

	case errors.As(err, &conflictErr):
		RespondJSON(w, http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: msgConflict,
			Details: ConflictDetails{
				ReservationID: conflictErr.ReservationID,
				RoomID:        conflictErr.RoomID,
				Date:          conflictErr.Date.Format(domain.DateFormat),
				StartTime:     conflictErr.StartTime.String(),
				EndTime:       conflictErr.EndTime.String(),
			},
		})
		return http.StatusConflict

	case errors.Is(err, domain.ErrConflict):
		RespondError(w, http.StatusConflict, msgConflict)
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidState):
		RespondError(w, http.StatusConflict, msgAlreadyDecided)
		return http.StatusConflict

	case errors.Is(err, domain.ErrUnavailable):
		RespondError(w, http.StatusServiceUnavailable, msgUnavailable)
		return http.StatusServiceUnavailable

	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}
