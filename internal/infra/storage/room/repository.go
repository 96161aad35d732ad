package room

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabReservation/pkg/psqlbuilder"
)

// Repository репозиторий каталога аудиторий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудиторий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает активные аудитории, отсортированные по названию
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "capacity", "is_active").
		From("rooms").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %w", ErrScanRow, err)
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %w", ErrScanRow, err)
	}

	return rooms, nil
}

// GetByID получает аудиторию по ID, включая неактивные
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "capacity", "is_active").
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var room domain.Room
	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.ID, &room.Name, &room.Capacity, &room.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}

	return &room, nil
}

// Upsert создает аудиторию или обновляет вместимость и активность существующей (по названию)
func (r *Repository) Upsert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("name", "capacity", "is_active").
		Values(room.Name, room.Capacity, room.IsActive).
		Suffix("ON CONFLICT (name) DO UPDATE SET capacity = EXCLUDED.capacity, is_active = EXCLUDED.is_active RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&room.ID); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return room, nil
}
