package reservation

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabReservation/pkg/ptr"
	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped), wrapped, mock
}

func reservationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "room_id", "name", "requester_id", "date", "start_time", "end_time",
		"purpose", "program", "section", "status", "decision_notes", "decided_by",
		"decided_at", "created_at", "updated_at",
	})
}

func TestCreate_ReturnsGeneratedFields(t *testing.T) {
	repo, _, mock := newTestRepository(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WithArgs(int64(1), int64(7), testDate, "09:00", "10:00", "Lab", "BSIT", "3A", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	res, err := repo.Create(context.Background(), &domain.Reservation{
		RoomID:      1,
		RequesterID: 7,
		Date:        testDate,
		StartTime:   "09:00",
		EndTime:     "10:00",
		Purpose:     "Lab",
		Program:     "BSIT",
		Section:     "3A",
		Status:      domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), res.ID)
	assert.Equal(t, now, res.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations r JOIN rooms rm ON rm.id = r.room_id WHERE r.id = $1")).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_ScansRoomNameAndDecision(t *testing.T) {
	repo, _, mock := newTestRepository(t)
	decidedAt := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(reservationRows().AddRow(
			int64(3), int64(2), "S502", int64(7), testDate, "09:00:00", "10:30:00",
			"Lab", "BSIT", "3A", "approved", "ok", int64(1), decidedAt, decidedAt, decidedAt,
		))

	res, err := repo.GetByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "S502", res.RoomName)
	assert.Equal(t, types.TimeString("10:30"), res.EndTime)
	assert.Equal(t, domain.StatusApproved, res.Status)
	require.NotNil(t, res.DecisionNotes)
	assert.Equal(t, "ok", *res.DecisionNotes)
	require.NotNil(t, res.DecidedBy)
	assert.Equal(t, int64(1), *res.DecidedBy)
}

func TestList_PendingQueue(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.status = $1 ORDER BY r.date ASC, r.start_time ASC, r.id ASC")).
		WithArgs("pending").
		WillReturnRows(reservationRows().
			AddRow(int64(1), int64(1), "S501", int64(7), testDate, "09:00", "10:00", "A", "P", "S", "pending", nil, nil, nil, testDate, testDate).
			AddRow(int64(2), int64(1), "S501", int64(8), testDate, "11:00", "12:00", "B", "P", "S", "pending", nil, nil, nil, testDate, testDate))

	status := domain.StatusPending
	list, err := repo.List(context.Background(), domain.ReservationFilter{Status: &status})

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].DecisionNotes)
	assert.Equal(t, int64(8), list[1].RequesterID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_DecidedOrdersByDecisionTime(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.requester_id = $1 AND r.status IN ($2,$3) ORDER BY r.decided_at DESC, r.id DESC")).
		WithArgs(int64(7), "approved", "denied").
		WillReturnRows(reservationRows())

	list, err := repo.List(context.Background(), domain.ReservationFilter{
		RequesterID: ptr.Ptr(int64(7)),
		DecidedOnly: true,
	})

	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByRoomAndDate_LocksRowsInTransaction(t *testing.T) {
	repo, db, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("r.status IN ($3,$4) ORDER BY r.start_time ASC, r.id ASC FOR UPDATE OF r")).
		WithArgs(int64(1), testDate, "pending", "approved").
		WillReturnRows(reservationRows())
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	_, err = repo.ListByRoomAndDate(ctx, 1, testDate, domain.ActiveStatuses)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByRoomAndDate_KeepsDriverErrorInChain(t *testing.T) {
	repo, db, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE OF r").
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"})
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = repo.ListByRoomAndDate(dbmetrics.WithTx(context.Background(), tx), 1, testDate, domain.ActiveStatuses)
	require.NoError(t, tx.Rollback())

	assert.ErrorIs(t, err, ErrExecQuery)
	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockKey_DistinctForWideRoomIDs(t *testing.T) {
	assert.NotEqual(t, lockKey(1, testDate), lockKey(1<<32+1, testDate))
	assert.NotEqual(t, lockKey(1, testDate), lockKey(1, testDate.AddDate(0, 0, 1)))
	assert.Equal(t, lockKey(1, testDate), lockKey(1, testDate.Add(15*time.Hour)))
}

func TestLockRoomDate(t *testing.T) {
	repo, db, mock := newTestRepository(t)

	t.Run("no transaction is a no-op", func(t *testing.T) {
		require.NoError(t, repo.LockRoomDate(context.Background(), 1, testDate))
	})

	t.Run("takes advisory lock keyed by room and date", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtextextended($1, 0))")).
			WithArgs("reservation:1:2025-03-10").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.BeginTx(context.Background(), nil)
		require.NoError(t, err)

		err = repo.LockRoomDate(dbmetrics.WithTx(context.Background(), tx), 1, testDate)
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDecision(t *testing.T) {
	decidedAt := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	record := domain.DecisionRecord{
		Status:    domain.StatusApproved,
		DecidedBy: 1,
		DecidedAt: decidedAt,
	}

	t.Run("updates pending reservation", func(t *testing.T) {
		repo, _, mock := newTestRepository(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateDecision(context.Background(), 3, record))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already decided", func(t *testing.T) {
		repo, _, mock := newTestRepository(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE r.id = $1")).
			WithArgs(int64(3)).
			WillReturnRows(reservationRows().AddRow(
				int64(3), int64(2), "S502", int64(7), testDate, "09:00", "10:30",
				"Lab", "BSIT", "3A", "denied", nil, int64(1), decidedAt, decidedAt, decidedAt,
			))

		err := repo.UpdateDecision(context.Background(), 3, record)
		assert.ErrorIs(t, err, ErrNotPending)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, _, mock := newTestRepository(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE r.id = $1")).
			WithArgs(int64(3)).
			WillReturnError(sql.ErrNoRows)

		err := repo.UpdateDecision(context.Background(), 3, record)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestDeletePending(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reservations WHERE id = $1 AND status = $2")).
		WithArgs(int64(9), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeletePending(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
