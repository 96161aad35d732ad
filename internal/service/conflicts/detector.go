package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

// Candidate интервал, который проверяется на пересечение
type Candidate struct {
	RoomID    int64
	Date      time.Time
	Start     types.TimeString
	End       types.TimeString
	ExcludeID *int64                     // Не учитывать это бронирование (повторная проверка при одобрении)
	Statuses  []domain.ReservationStatus // Какие статусы блокируют слот; по умолчанию pending и approved
}

// Detector ищет бронирования, пересекающиеся с кандидатом
type Detector struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewDetector создает новый экземпляр детектора пересечений
func NewDetector(reservationRepo ReservationRepository, logger Logger) *Detector {
	return &Detector{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// HasConflict возвращает первое активное бронирование, пересекающееся с интервалом [start, end),
// или nil, если слот свободен. Внутри транзакции найденные строки блокируются.
func (d *Detector) HasConflict(
	ctx context.Context,
	roomID int64,
	date time.Time,
	start, end types.TimeString,
	excludingID *int64,
) (*domain.Reservation, error) {
	return d.Find(ctx, Candidate{
		RoomID:    roomID,
		Date:      date,
		Start:     start,
		End:       end,
		ExcludeID: excludingID,
	})
}

// Find проверяет кандидата с произвольным набором блокирующих статусов
func (d *Detector) Find(ctx context.Context, c Candidate) (*domain.Reservation, error) {
	statuses := c.Statuses
	if len(statuses) == 0 {
		statuses = domain.ActiveStatuses
	}

	reservations, err := d.reservationRepo.ListByRoomAndDate(ctx, c.RoomID, c.Date, statuses)
	if err != nil {
		d.logger.Error("Find: failed to list reservations for room=%d date=%s: %v",
			c.RoomID, c.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Find - repository error: %w", ErrLookupFailed, err)
	}

	conflict := FirstOverlap(reservations, c.Start, c.End, c.ExcludeID)
	if conflict != nil {
		d.logger.Info("Find: room=%d date=%s %s-%s collides with reservation id=%d",
			c.RoomID, c.Date.Format(domain.DateFormat), c.Start, c.End, conflict.ID)
	}

	return conflict, nil
}

// FirstOverlap возвращает первое бронирование из списка, пересекающееся с [start, end).
// Касающиеся интервалы (конец одного равен началу другого) не пересекаются.
func FirstOverlap(
	reservations []*domain.Reservation,
	start, end types.TimeString,
	excludingID *int64,
) *domain.Reservation {
	for _, r := range reservations {
		if excludingID != nil && r.ID == *excludingID {
			continue
		}
		if domain.Overlaps(start, end, r.StartTime, r.EndTime) {
			return r
		}
	}
	return nil
}
