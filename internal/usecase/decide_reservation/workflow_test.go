package decide_reservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/conflicts"
	"github.com/m04kA/SMC-LabReservation/internal/service/refresh"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
	"github.com/m04kA/SMC-LabReservation/internal/testfixtures"
	"github.com/m04kA/SMC-LabReservation/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-LabReservation/internal/usecase/decide_reservation"
	"github.com/m04kA/SMC-LabReservation/internal/usecase/get_available_rooms"
	"github.com/m04kA/SMC-LabReservation/pkg/logger"
	"github.com/m04kA/SMC-LabReservation/pkg/metrics"
	"github.com/m04kA/SMC-LabReservation/pkg/ptr"
)

// Полный путь заявки: создание, одобрение, исчезновение аудитории из доступных на дату
func TestReservationLifecycle(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()
	store := testfixtures.NewStore()
	tx := testfixtures.NewTxManager(store)
	var m *metrics.Metrics

	for _, name := range []string{"S501", "S502", "S503"} {
		store.AddRoom(name)
	}
	rooms, err := store.Rooms().ListActive(ctx)
	require.NoError(t, err)
	s503 := rooms[2].ID

	coordinator := refresh.NewCoordinator(store.Rooms(), store.Reservations(), time.Minute, nil, m, log)
	detector := conflicts.NewDetector(store.Reservations(), log)

	create := create_reservation.NewUseCase(store.Reservations(), store.Rooms(), detector, coordinator, m, tx, log)
	decide := decide_reservation.NewUseCase(store.Reservations(), detector, coordinator, m, tx, log)
	available := get_available_rooms.NewUseCase(coordinator, store.Rooms(), store.Reservations(), log)
	listing := reservations.NewService(store.Reservations(), coordinator, log)

	requester := domain.Actor{ID: 7, Role: domain.RoleRequester}
	admin := domain.Actor{ID: 1, Role: domain.RoleAdmin}
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	before, err := available.Execute(ctx, &get_available_rooms.Request{Date: date})
	require.NoError(t, err)
	assert.Len(t, before.Rooms, 3)

	created, err := create.Execute(ctx, &create_reservation.Request{
		Actor:     requester,
		RoomID:    s503,
		Date:      date,
		StartTime: "09:00",
		EndTime:   "10:00",
		Purpose:   "Thesis defense rehearsal",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)

	queue, err := listing.List(ctx, &models.ListRequest{Actor: admin, Scope: domain.ScopeAll, Status: ptr.Ptr("pending")})
	require.NoError(t, err)
	require.Len(t, queue.Reservations, 1)
	assert.Equal(t, created.ID, queue.Reservations[0].ID)

	decided, err := decide.Execute(ctx, &decide_reservation.Request{
		Actor:         admin,
		ReservationID: created.ID,
		Decision:      domain.DecisionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", decided.Status)

	after, err := available.Execute(ctx, &get_available_rooms.Request{Date: date})
	require.NoError(t, err)
	for _, room := range after.Rooms {
		assert.NotEqual(t, "S503", room.Name)
	}
	assert.Len(t, after.Rooms, 2)
	assert.Greater(t, *after.Version, *before.Version)

	feed, err := listing.Notifications(ctx, requester)
	require.NoError(t, err)
	require.Len(t, feed.Reservations, 1)
	assert.Equal(t, "approved", feed.Reservations[0].Status)
}

