package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: domain.NewValidationError("endTime", "must be after startTime"), status: http.StatusBadRequest},
		{name: "unauthenticated", err: domain.ErrUnauthenticated, status: http.StatusUnauthorized},
		{name: "forbidden", err: fmt.Errorf("%w: admin only", domain.ErrForbidden), status: http.StatusForbidden},
		{name: "not found", err: fmt.Errorf("%w: reservation", domain.ErrNotFound), status: http.StatusNotFound},
		{name: "invalid state", err: domain.ErrInvalidState, status: http.StatusConflict},
		{name: "unavailable", err: fmt.Errorf("%w: db down", domain.ErrUnavailable), status: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			assert.Equal(t, tt.status, RespondDomainError(rec, tt.err))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRespondDomainError_ConflictCarriesSlot(t *testing.T) {
	rec := httptest.NewRecorder()
	err := domain.NewConflictError(&domain.Reservation{
		ID:        11,
		RoomID:    1,
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
	})

	RespondDomainError(rec, fmt.Errorf("wrapped: %w", err))

	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Details ConflictDetails `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(11), body.Details.ReservationID)
	assert.Equal(t, "2025-03-10", body.Details.Date)
	assert.Equal(t, "10:00", body.Details.StartTime)
}

func TestRespondDomainError_ValidationNamesField(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondDomainError(rec, domain.NewValidationError("roomId", "is required"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "roomId", body.Field)
}
