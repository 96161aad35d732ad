package create_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservation/internal/api/middleware"
	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-LabReservation/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-LabReservation/pkg/logger"
)

type stubUseCase struct {
	got  *createReservation.Request
	resp *models.ReservationResponse
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createReservation.Request) (*models.ReservationResponse, error) {
	s.got = req
	return s.resp, s.err
}

func newRequest(t *testing.T, body string, actor *domain.Actor) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	return req
}

func TestHandler_Created(t *testing.T) {
	uc := &stubUseCase{resp: &models.ReservationResponse{ID: 7, RoomID: 1, RoomName: "S501", Status: "pending"}}
	h := NewHandler(uc, logger.NewNop())
	actor := domain.Actor{ID: 42, Role: domain.RoleRequester}

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, `{"roomId":1,"date":"2025-03-10","startTime":"10:00","endTime":"11:00","purpose":"Lab exam"}`, &actor))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.Actor.ID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), uc.got.Date)
	assert.Equal(t, "10:00", uc.got.StartTime.String())

	var body models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "pending", body.Status)
}

func TestHandler_Rejections(t *testing.T) {
	actor := domain.Actor{ID: 42, Role: domain.RoleRequester}
	existing := &domain.Reservation{
		ID: 3, RoomID: 1, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "11:00",
	}

	tests := []struct {
		name      string
		body      string
		actor     *domain.Actor
		ucErr     error
		status    int
		field     string
		reachesUC bool
	}{
		{name: "no session", body: `{}`, status: http.StatusUnauthorized},
		{name: "unknown field", body: `{"room":1}`, actor: &actor, status: http.StatusBadRequest},
		{name: "bad date", body: `{"roomId":1,"date":"10/03/2025","startTime":"10:00","endTime":"11:00"}`, actor: &actor, status: http.StatusBadRequest, field: "date"},
		{name: "bad time", body: `{"roomId":1,"date":"2025-03-10","startTime":"25:00","endTime":"11:00"}`, actor: &actor, status: http.StatusBadRequest, field: "startTime"},
		{
			name: "slot taken", body: `{"roomId":1,"date":"2025-03-10","startTime":"10:30","endTime":"11:30"}`, actor: &actor,
			ucErr: domain.NewConflictError(existing), status: http.StatusConflict, reachesUC: true,
		},
		{
			name: "store down", body: `{"roomId":1,"date":"2025-03-10","startTime":"10:30","endTime":"11:30"}`, actor: &actor,
			ucErr: domain.ErrUnavailable, status: http.StatusServiceUnavailable, reachesUC: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.ucErr}
			h := NewHandler(uc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(t, tt.body, tt.actor))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.reachesUC, uc.got != nil)

			if tt.field != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.field, body.Field)
			}
		})
	}
}
