package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
	"github.com/m04kA/SMC-LabReservation/internal/testfixtures"
	"github.com/m04kA/SMC-LabReservation/pkg/logger"
	"github.com/m04kA/SMC-LabReservation/pkg/ptr"
	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

var (
	day       = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	requester = domain.Actor{ID: 7, Role: domain.RoleRequester}
	other     = domain.Actor{ID: 8, Role: domain.RoleRequester}
	admin     = domain.Actor{ID: 1, Role: domain.RoleAdmin}
)

type fixture struct {
	store *testfixtures.Store
	stale *testfixtures.StaleRecorder
	svc   *Service
	room  int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testfixtures.NewStore()
	stale := &testfixtures.StaleRecorder{}
	return &fixture{
		store: store,
		stale: stale,
		svc:   NewService(store.Reservations(), stale, logger.NewNop()),
		room:  store.AddRoom("S501"),
	}
}

func (f *fixture) reserve(t *testing.T, owner domain.Actor, start, end string) int64 {
	t.Helper()
	res, err := f.store.Reservations().Create(context.Background(), &domain.Reservation{
		RoomID:      f.room,
		RequesterID: owner.ID,
		Date:        day,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Purpose:     "Lab",
		Status:      domain.StatusPending,
	})
	require.NoError(t, err)
	return res.ID
}

func TestList_RequesterIsNarrowedToOwnReservations(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, requester, "09:00", "10:00")
	f.reserve(t, other, "10:00", "11:00")

	resp, err := f.svc.List(context.Background(), &models.ListRequest{Actor: requester, Scope: domain.ScopeAll})

	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, requester.ID, resp.Reservations[0].RequesterID)
	assert.Equal(t, "S501", resp.Reservations[0].RoomName)
}

func TestList_AdminSeesEverything(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, requester, "09:00", "10:00")
	f.reserve(t, other, "10:00", "11:00")

	resp, err := f.svc.List(context.Background(), &models.ListRequest{
		Actor:  admin,
		Scope:  domain.ScopeAll,
		Date:   &day,
		Status: ptr.Ptr("pending"),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)
}

func TestList_InvalidStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(context.Background(), &models.ListRequest{Actor: admin, Status: ptr.Ptr("cancelled")})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)
}

func TestGet_Access(t *testing.T) {
	f := newFixture(t)
	id := f.reserve(t, requester, "09:00", "10:00")

	_, err := f.svc.Get(context.Background(), requester, id)
	assert.NoError(t, err)

	_, err = f.svc.Get(context.Background(), admin, id)
	assert.NoError(t, err)

	_, err = f.svc.Get(context.Background(), other, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Get(context.Background(), admin, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithdraw(t *testing.T) {
	t.Run("owner withdraws pending request", func(t *testing.T) {
		f := newFixture(t)
		id := f.reserve(t, requester, "09:00", "10:00")

		require.NoError(t, f.svc.Withdraw(context.Background(), requester, id))

		_, ok := f.store.Reservation(id)
		assert.False(t, ok)
		assert.Equal(t, 1, f.stale.Count())
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		f := newFixture(t)
		id := f.reserve(t, requester, "09:00", "10:00")

		err := f.svc.Withdraw(context.Background(), other, id)

		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, ok := f.store.Reservation(id)
		assert.True(t, ok)
	})

	t.Run("decided request cannot be withdrawn", func(t *testing.T) {
		f := newFixture(t)
		id := f.reserve(t, requester, "09:00", "10:00")
		require.NoError(t, f.store.Reservations().UpdateDecision(context.Background(), id, domain.DecisionRecord{
			Status:    domain.StatusApproved,
			DecidedBy: admin.ID,
			DecidedAt: day,
		}))

		err := f.svc.Withdraw(context.Background(), requester, id)

		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assert.Zero(t, f.stale.Count())
	})
}

func TestNotifications_NewestDecisionFirst(t *testing.T) {
	f := newFixture(t)
	first := f.reserve(t, requester, "09:00", "10:00")
	second := f.reserve(t, requester, "10:00", "11:00")
	f.reserve(t, requester, "11:00", "12:00")

	reservations := f.store.Reservations()
	require.NoError(t, reservations.UpdateDecision(context.Background(), first, domain.DecisionRecord{
		Status: domain.StatusApproved, DecidedBy: admin.ID, DecidedAt: day.Add(time.Hour),
	}))
	require.NoError(t, reservations.UpdateDecision(context.Background(), second, domain.DecisionRecord{
		Status: domain.StatusDenied, DecidedBy: admin.ID, DecidedAt: day.Add(2 * time.Hour),
	}))

	resp, err := f.svc.Notifications(context.Background(), requester)

	require.NoError(t, err)
	require.Len(t, resp.Reservations, 2)
	assert.Equal(t, second, resp.Reservations[0].ID)
	assert.Equal(t, "denied", resp.Reservations[0].Status)
	assert.NotNil(t, resp.Reservations[1].DecidedAt)
}

func TestList_StoreFailureIsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("connection reset")

	_, err := f.svc.List(context.Background(), &models.ListRequest{Actor: admin})

	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
