package decide_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	reservationRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LabReservation/internal/service/conflicts"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
)

// UseCase use case для одобрения или отклонения заявки администратором
type UseCase struct {
	reservationRepo ReservationRepository
	detector        ConflictDetector
	staleMarker     StaleMarker
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	detector ConflictDetector,
	staleMarker StaleMarker,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		detector:        detector,
		staleMarker:     staleMarker,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет решение по заявке.
// Переход возможен только из pending; при одобрении пересечения повторно проверяются
// с уже одобренными бронированиями под блокировкой пары (аудитория, дата).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("DecideReservation: user=%d, reservation=%d, decision=%s",
		req.Actor.ID, req.ReservationID, req.Decision)

	// 1. Проверка прав и входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DecideReservation: rejected: %v", err)
		return nil, err
	}

	target, _ := req.Decision.TargetStatus()

	var result *domain.Reservation

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем заявку, чтобы узнать пару (аудитория, дата)
		reservation, err := uc.getPending(txCtx, req.ReservationID)
		if err != nil {
			return err
		}

		// 2.2. Блокируем пару до конца транзакции и перечитываем заявку под блокировкой
		if err := uc.reservationRepo.LockRoomDate(txCtx, reservation.RoomID, reservation.Date); err != nil {
			uc.logger.Error("DecideReservation: failed to lock room=%d: %v", reservation.RoomID, err)
			return fmt.Errorf("%w: failed to lock room date: %w", ErrInternal, err)
		}

		reservation, err = uc.getPending(txCtx, req.ReservationID)
		if err != nil {
			return err
		}

		// 2.3. При одобрении проверяем пересечения с одобренными бронированиями
		if target == domain.StatusApproved {
			conflict, err := uc.detector.Find(txCtx, conflicts.Candidate{
				RoomID:    reservation.RoomID,
				Date:      reservation.Date,
				Start:     reservation.StartTime,
				End:       reservation.EndTime,
				ExcludeID: &reservation.ID,
				Statuses:  []domain.ReservationStatus{domain.StatusApproved},
			})
			if err != nil {
				return err
			}
			if conflict != nil {
				uc.logger.Warn("DecideReservation: reservation id=%d collides with approved reservation id=%d",
					reservation.ID, conflict.ID)
				uc.metrics.ConflictDetected("approve")
				return domain.NewConflictError(conflict)
			}
		}

		// 2.4. Записываем решение
		record := domain.DecisionRecord{
			Status:    target,
			DecidedBy: req.Actor.ID,
			Notes:     req.Notes,
			DecidedAt: uc.timeProvider.Now(),
		}

		if err := uc.reservationRepo.UpdateDecision(txCtx, reservation.ID, record); err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrNotPending):
				return ErrAlreadyProcessed
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrReservationNotFound
			}
			uc.logger.Error("DecideReservation: failed to update reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		reservation.Status = record.Status
		reservation.DecidedBy = &record.DecidedBy
		reservation.DecisionNotes = record.Notes
		reservation.DecidedAt = &record.DecidedAt
		result = reservation
		return nil
	})

	if err != nil {
		return nil, classify(err)
	}

	// 3. Сбрасываем снимки календаря на дату
	uc.staleMarker.MarkStale(ctx, result.Date)
	uc.metrics.DecisionRecorded(string(req.Decision))

	uc.logger.Info("DecideReservation: reservation id=%d is now %s", result.ID, result.Status)
	return models.FromDomainReservation(result), nil
}

// getPending читает заявку и проверяет, что решение по ней ещё не принято
func (uc *UseCase) getPending(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("DecideReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("DecideReservation: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
	}

	if reservation.Status != domain.StatusPending {
		uc.logger.Warn("DecideReservation: reservation id=%d is already %s", id, reservation.Status)
		return nil, ErrAlreadyProcessed
	}

	return reservation, nil
}

// classify оставляет ошибки таксономии как есть, остальное (начало/фиксация транзакции) недоступность
func classify(err error) error {
	for _, known := range []error{
		domain.ErrValidation,
		domain.ErrConflict,
		domain.ErrInvalidState,
		domain.ErrNotFound,
		domain.ErrUnavailable,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
