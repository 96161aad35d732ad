package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/pkg/dbmetrics"
)

func newTestManager(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTransactionManager(dbmetrics.Wrap(db, nil, "test")), mock
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	tm, mock := newTestManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		tx, _ := dbmetrics.GetTx(ctx)
		_, err := tx.ExecContext(ctx, "UPDATE rooms SET is_active = false")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollsBackOnError(t *testing.T) {
	tm, mock := newTestManager(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	tm, mock := newTestManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return &pq.Error{Code: pqSerializationFailure}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	tm, mock := newTestManager(t)
	tm.WithMaxRetries(1)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	calls := 0
	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: pqSerializationFailure}
	})

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedCallReusesTransaction(t *testing.T) {
	tm, mock := newTestManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		outer, _ := dbmetrics.GetTx(ctx)
		return tm.DoSerializable(ctx, func(inner context.Context) error {
			tx, _ := dbmetrics.GetTx(inner)
			assert.Same(t, outer, tx)
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
