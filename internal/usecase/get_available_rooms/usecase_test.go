package get_available_rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/refresh"
	"github.com/m04kA/SMC-LabReservation/internal/testfixtures"
	"github.com/m04kA/SMC-LabReservation/pkg/logger"
	"github.com/m04kA/SMC-LabReservation/pkg/ptr"
	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store       *testfixtures.Store
	coordinator *refresh.Coordinator
	uc          *UseCase
	rooms       map[string]int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testfixtures.NewStore()
	log := logger.NewNop()
	coordinator := refresh.NewCoordinator(store.Rooms(), store.Reservations(), time.Minute, nil, nil, log)

	f := &fixture{
		store:       store,
		coordinator: coordinator,
		uc:          NewUseCase(coordinator, store.Rooms(), store.Reservations(), log),
		rooms:       make(map[string]int64),
	}
	for _, name := range []string{"S501", "S502", "S503"} {
		f.rooms[name] = store.AddRoom(name)
	}
	return f
}

func (f *fixture) reserve(t *testing.T, room, start, end string, status domain.ReservationStatus) {
	t.Helper()
	_, err := f.store.Reservations().Create(context.Background(), &domain.Reservation{
		RoomID:      f.rooms[room],
		RequesterID: 7,
		Date:        day,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Status:      status,
	})
	require.NoError(t, err)
}

func names(resp *Response) []string {
	result := make([]string, 0, len(resp.Rooms))
	for _, r := range resp.Rooms {
		result = append(result, r.Name)
	}
	return result
}

func TestExecute_DayAvailabilityExcludesRoomsWithActiveReservations(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, "S501", "09:00", "10:00", domain.StatusPending)
	f.reserve(t, "S502", "09:00", "10:00", domain.StatusDenied)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: day})

	require.NoError(t, err)
	assert.Equal(t, []string{"S502", "S503"}, names(resp))
	assert.NotNil(t, resp.Version)
	assert.Nil(t, resp.StartTime)
}

func TestExecute_InactiveRoomsNeverAvailable(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Rooms().Upsert(context.Background(), &domain.Room{Name: "S503", Capacity: 40, IsActive: false})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: day})

	require.NoError(t, err)
	assert.Equal(t, []string{"S501", "S502"}, names(resp))
}

func TestExecute_WindowAvailability(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, "S501", "10:00", "11:00", domain.StatusApproved)
	f.reserve(t, "S502", "13:00", "14:00", domain.StatusPending)

	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{name: "touching the S501 booking", start: "11:00", end: "12:00", want: []string{"S501", "S502", "S503"}},
		{name: "overlapping the S501 booking", start: "10:30", end: "11:30", want: []string{"S502", "S503"}},
		{name: "spanning both", start: "09:00", end: "15:00", want: []string{"S503"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.uc.Execute(context.Background(), &Request{
				Date:      day,
				StartTime: ptr.Ptr(types.TimeString(tt.start)),
				EndTime:   ptr.Ptr(types.TimeString(tt.end)),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(resp))
			assert.Nil(t, resp.Version)
		})
	}
}

func TestExecute_WindowReadsLiveStateDayUsesSnapshot(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{Date: day})
	require.NoError(t, err)

	f.reserve(t, "S501", "10:00", "11:00", domain.StatusPending)

	window, err := f.uc.Execute(context.Background(), &Request{
		Date:      day,
		StartTime: ptr.Ptr(types.TimeString("10:00")),
		EndTime:   ptr.Ptr(types.TimeString("11:00")),
	})
	require.NoError(t, err)
	assert.NotContains(t, names(window), "S501")

	cached, err := f.uc.Execute(context.Background(), &Request{Date: day})
	require.NoError(t, err)
	assert.Contains(t, names(cached), "S501")

	f.coordinator.MarkStale(context.Background(), day)

	fresh, err := f.uc.Execute(context.Background(), &Request{Date: day})
	require.NoError(t, err)
	assert.NotContains(t, names(fresh), "S501")
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{name: "missing date", req: Request{}, field: "date"},
		{name: "start without end", req: Request{Date: day, StartTime: ptr.Ptr(types.TimeString("10:00"))}, field: "startTime"},
		{name: "reversed window", req: Request{Date: day, StartTime: ptr.Ptr(types.TimeString("11:00")), EndTime: ptr.Ptr(types.TimeString("10:00"))}, field: "endTime"},
		{name: "malformed end", req: Request{Date: day, StartTime: ptr.Ptr(types.TimeString("10:00")), EndTime: ptr.Ptr(types.TimeString("25:00"))}, field: "endTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &tt.req)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestExecute_StoreFailureIsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), &Request{Date: day})

	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
