package decide_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/internal/api/middleware"
	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
	decideReservation "github.com/m04kA/SMC-LabReservation/internal/usecase/decide_reservation"
	"github.com/m04kA/SMC-LabReservation/pkg/logger"
)

type stubUseCase struct {
	got *decideReservation.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *decideReservation.Request) (*models.ReservationResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ReservationResponse{ID: req.ReservationID, Status: "approved"}, nil
}

func serve(h *Handler, id, body string, actor domain.Actor) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{id}/decision", h.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/reservations/"+id+"/decision", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), actor))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Decide(t *testing.T) {
	admin := domain.Actor{ID: 1, Role: domain.RoleAdmin}

	t.Run("approve", func(t *testing.T) {
		uc := &stubUseCase{}
		rec := serve(NewHandler(uc, logger.NewNop()), "15", `{"decision":"approve","notes":"ok"}`, admin)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, uc.got)
		assert.Equal(t, int64(15), uc.got.ReservationID)
		assert.Equal(t, domain.Decision("approve"), uc.got.Decision)
		assert.Equal(t, "ok", *uc.got.Notes)
	})

	t.Run("invalid id", func(t *testing.T) {
		uc := &stubUseCase{}
		rec := serve(NewHandler(uc, logger.NewNop()), "abc", `{"decision":"approve"}`, admin)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, uc.got)
	})

	t.Run("already processed", func(t *testing.T) {
		uc := &stubUseCase{err: decideReservation.ErrAlreadyProcessed}
		rec := serve(NewHandler(uc, logger.NewNop()), "15", `{"decision":"deny"}`, admin)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("requester forbidden", func(t *testing.T) {
		uc := &stubUseCase{}
		rec := serve(NewHandler(uc, logger.NewNop()), "15", `{"decision":"approve"}`,
			domain.Actor{ID: 9, Role: domain.RoleRequester})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Nil(t, uc.got)
	})

	t.Run("requester with malformed body is still forbidden", func(t *testing.T) {
		requester := domain.Actor{ID: 9, Role: domain.RoleRequester}
		for _, body := range []string{`{"decision":`, `{"verdict":"approve"}`} {
			uc := &stubUseCase{}
			rec := serve(NewHandler(uc, logger.NewNop()), "15", body, requester)

			assert.Equal(t, http.StatusForbidden, rec.Code, body)
			assert.Nil(t, uc.got)
		}
	})

	t.Run("requester with bad id is still forbidden", func(t *testing.T) {
		uc := &stubUseCase{}
		rec := serve(NewHandler(uc, logger.NewNop()), "abc", `{}`,
			domain.Actor{ID: 9, Role: domain.RoleRequester})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
