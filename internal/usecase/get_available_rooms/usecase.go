package get_available_rooms

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// UseCase use case для получения свободных аудиторий
type UseCase struct {
	snapshots       SnapshotSource
	roomRepo        RoomRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	snapshots SnapshotSource,
	roomRepo RoomRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		snapshots:       snapshots,
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute возвращает свободные аудитории.
// Общая доступность на дату читается из снимка координатора;
// доступность окна всегда считается по актуальным данным.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableRooms: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	resp := &Response{Date: date.Format(domain.DateFormat)}

	// 2. Общая доступность: аудитории без активных бронирований на дату
	if req.StartTime == nil {
		snapshot, err := uc.snapshots.Day(ctx, date)
		if err != nil {
			uc.logger.Error("GetAvailableRooms: failed to load snapshot for %s: %v", resp.Date, err)
			return nil, fmt.Errorf("%w: snapshot: %w", ErrInternal, err)
		}

		version := snapshot.Version
		resp.Version = &version
		resp.Rooms = toRoomInfo(freeForDay(snapshot.Rooms, snapshot.Reservations))

		uc.logger.Info("GetAvailableRooms: %s has %d free rooms", resp.Date, len(resp.Rooms))
		return resp, nil
	}

	// 3. Доступность окна по актуальным данным
	rooms, err := uc.roomRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: rooms: %w", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		Date:       &date,
		ActiveOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to list reservations for %s: %v", resp.Date, err)
		return nil, fmt.Errorf("%w: reservations: %w", ErrInternal, err)
	}

	start, end := req.StartTime.String(), req.EndTime.String()
	resp.StartTime = &start
	resp.EndTime = &end
	resp.Rooms = toRoomInfo(freeForWindow(rooms, reservations, *req.StartTime, *req.EndTime))

	uc.logger.Info("GetAvailableRooms: %s %s-%s has %d free rooms", resp.Date, start, end, len(resp.Rooms))
	return resp, nil
}

func toRoomInfo(rooms []*domain.Room) []RoomInfo {
	result := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, RoomInfo{
			ID:       r.ID,
			Name:     r.Name,
			Capacity: r.Capacity,
		})
	}
	return result
}
