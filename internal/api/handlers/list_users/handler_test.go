package list_users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/internal/api/middleware"
	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/users"
	"github.com/m04kA/SMC-LabReservation/internal/service/users/models"
	"github.com/m04kA/SMC-LabReservation/pkg/logger"
)

type stubService struct{}

func (stubService) ListUsers(_ context.Context, actor domain.Actor) (*models.UserListResponse, error) {
	if !actor.IsAdmin() {
		return nil, users.ErrAdminOnly
	}
	return &models.UserListResponse{Users: []models.UserResponse{{ID: 1, Username: "admin", Role: "admin"}}}, nil
}

func serve(actor *domain.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}

	rec := httptest.NewRecorder()
	NewHandler(stubService{}, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_ListUsers(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		rec := serve(&domain.Actor{ID: 1, Role: domain.RoleAdmin})

		require.Equal(t, http.StatusOK, rec.Code)
		var body models.UserListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Users, 1)
		assert.Equal(t, "admin", body.Users[0].Username)
	})

	t.Run("requester forbidden", func(t *testing.T) {
		rec := serve(&domain.Actor{ID: 2, Role: domain.RoleRequester})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no actor", func(t *testing.T) {
		rec := serve(nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
