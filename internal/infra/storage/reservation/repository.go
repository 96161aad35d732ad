package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabReservation/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"r.id",
	"r.room_id",
	"rm.name",
	"r.requester_id",
	"r.date",
	"r.start_time",
	"r.end_time",
	"r.purpose",
	"r.program",
	"r.section",
	"r.status",
	"r.decision_notes",
	"r.decided_by",
	"r.decided_at",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий для работы с бронированиями аудиторий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Проверка пересечений выполняется вызывающей стороной в той же транзакции.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"room_id",
			"requester_id",
			"date",
			"start_time",
			"end_time",
			"purpose",
			"program",
			"section",
			"status",
		).
		Values(
			res.RoomID,
			res.RequesterID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.Purpose,
			res.Program,
			res.Section,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID вместе с названием аудитории
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectReservations().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования с фильтрацией
//
// Примеры использования:
//
// 1. Все заявки пользователя:
//    filter := domain.ReservationFilter{RequesterID: &userID}
//
// 2. Активные бронирования на дату (календарь, доступность):
//    filter := domain.ReservationFilter{Date: &date, ActiveOnly: true}
//
// 3. Очередь на рассмотрение администратора:
//    status := domain.StatusPending
//    filter := domain.ReservationFilter{Status: &status}
//
// 4. Решения по заявкам пользователя (уведомления):
//    filter := domain.ReservationFilter{RequesterID: &userID, DecidedOnly: true}
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectReservations()

	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.room_id": *filter.RoomID})
	}
	if filter.RequesterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.requester_id": *filter.RequesterID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.date": domain.DateOnly(*filter.Date)})
	}

	switch {
	case filter.Status != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": string(*filter.Status)})
	case filter.ActiveOnly:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": statusStrings(domain.ActiveStatuses)})
	case filter.DecidedOnly:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": statusStrings(domain.DecidedStatuses)})
	}

	if filter.DecidedOnly {
		selectBuilder = selectBuilder.OrderBy("r.decided_at DESC", "r.id DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("r.date ASC", "r.start_time ASC", "r.id ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByRoomAndDate получает бронирования аудитории на дату с указанными статусами.
// Внутри транзакции строки блокируются (FOR UPDATE OF r) до её завершения.
func (r *Repository) ListByRoomAndDate(
	ctx context.Context,
	roomID int64,
	date time.Time,
	statuses []domain.ReservationStatus,
) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectReservations().
		Where(squirrel.Eq{"r.room_id": roomID}).
		Where(squirrel.Eq{"r.date": domain.DateOnly(date)}).
		OrderBy("r.start_time ASC", "r.id ASC")

	if len(statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": statusStrings(statuses)})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// LockRoomDate берёт транзакционную advisory-блокировку на пару (аудитория, дата).
// Сериализует проверку пересечений и запись для одной пары; вне транзакции ничего не делает.
func (r *Repository) LockRoomDate(ctx context.Context, roomID int64, date time.Time) error {
	tx, ok := dbmetrics.GetTx(ctx)
	if !ok {
		return nil
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", lockKey(roomID, date)); err != nil {
		return fmt.Errorf("%w: LockRoomDate - acquire advisory lock: %w", ErrExecQuery, err)
	}

	return nil
}

// lockKey ключ advisory-блокировки. Хешируется целиком, без усечения id аудитории.
func lockKey(roomID int64, date time.Time) string {
	return fmt.Sprintf("reservation:%d:%s", roomID, domain.DateOnly(date).Format(domain.DateFormat))
}

// UpdateDecision записывает решение администратора.
// Обновление выполняется только для заявок в статусе pending, иначе ErrNotPending.
func (r *Repository) UpdateDecision(ctx context.Context, id int64, decision domain.DecisionRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", string(decision.Status)).
		Set("decided_by", decision.DecidedBy).
		Set("decision_notes", decision.Notes).
		Set("decided_at", decision.DecidedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.missingOrDecided(ctx, id)
	}

	return nil
}

// DeletePending удаляет заявку, по которой ещё нет решения (отзыв заявителем)
func (r *Repository) DeletePending(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeletePending - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeletePending - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeletePending - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.missingOrDecided(ctx, id)
	}

	return nil
}

// missingOrDecided различает отсутствующую запись и запись с уже принятым решением
func (r *Repository) missingOrDecided(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrNotPending
}

func selectReservations() squirrel.SelectBuilder {
	return psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("rooms rm ON rm.id = r.room_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.RoomID,
		&res.RoomName,
		&res.RequesterID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.Purpose,
		&res.Program,
		&res.Section,
		&status,
		&res.DecisionNotes,
		&res.DecidedBy,
		&res.DecidedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatus(status)
	res.Date = domain.DateOnly(res.Date)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
