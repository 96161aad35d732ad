package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	roomRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/room"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
)

// UseCase use case для создания заявки на бронирование
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	detector        ConflictDetector
	staleMarker     StaleMarker
	metrics         Metrics
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	detector ConflictDetector,
	staleMarker StaleMarker,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		detector:        detector,
		staleMarker:     staleMarker,
		metrics:         metrics,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания заявки.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
// под блокировкой пары (аудитория, дата).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("CreateReservation: user=%d, room=%d, date=%s, time=%s-%s",
		req.Actor.ID, req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	var result *domain.Reservation

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем пару (аудитория, дата) до конца транзакции
		if err := uc.reservationRepo.LockRoomDate(txCtx, req.RoomID, date); err != nil {
			uc.logger.Error("CreateReservation: failed to lock room=%d date=%s: %v", req.RoomID, date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to lock room date: %w", ErrInternal, err)
		}

		// 2.2. Проверяем, что аудитория существует и активна
		room, err := uc.roomRepo.GetByID(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateReservation: room id=%d not found", req.RoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("CreateReservation: failed to get room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
		}
		if !room.IsActive {
			uc.logger.Warn("CreateReservation: room id=%d is inactive", req.RoomID)
			return ErrRoomNotFound
		}

		// 2.3. Ищем пересечения с активными бронированиями (pending и approved)
		conflict, err := uc.detector.HasConflict(txCtx, req.RoomID, date, req.StartTime, req.EndTime, nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			uc.logger.Warn("CreateReservation: slot %s-%s in room=%d collides with reservation id=%d",
				req.StartTime, req.EndTime, req.RoomID, conflict.ID)
			uc.metrics.ConflictDetected("create")
			return domain.NewConflictError(conflict)
		}

		// 2.4. Сохраняем заявку в статусе pending
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			RoomID:      req.RoomID,
			RequesterID: req.Actor.ID,
			Date:        date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Purpose:     req.Purpose,
			Program:     req.Program,
			Section:     req.Section,
			Status:      domain.StatusPending,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		created.RoomName = room.Name
		result = created
		return nil
	})

	if err != nil {
		return nil, classify(err)
	}

	// 3. Сбрасываем снимки календаря на дату
	uc.staleMarker.MarkStale(ctx, date)
	uc.metrics.ReservationCreated()

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)
	return models.FromDomainReservation(result), nil
}

// classify оставляет ошибки таксономии как есть, остальное (начало/фиксация транзакции) недоступность
func classify(err error) error {
	for _, known := range []error{
		domain.ErrValidation,
		domain.ErrConflict,
		domain.ErrUnavailable,
		domain.ErrUnauthenticated,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
