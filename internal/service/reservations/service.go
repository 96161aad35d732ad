package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	reservationRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LabReservation/internal/service/reservations/models"
)

// Service сервис для чтения и отзыва бронирований
type Service struct {
	reservationRepo ReservationRepository
	staleMarker     StaleMarker
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	staleMarker StaleMarker,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		staleMarker:     staleMarker,
		logger:          logger,
	}
}

// List возвращает бронирования по фильтру.
// Администратор видит все заявки, заявитель только свои.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter from user=%d: %v", req.Actor.ID, err)
		return nil, err
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.Actor.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: user=%d scope=%s got %d reservations", req.Actor.ID, req.Scope, len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Get получает бронирование по ID. Доступно владельцу и администратору.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*models.ReservationResponse, error) {
	reservation, err := s.getByID(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(actor, reservation); err != nil {
		s.logger.Warn("Get: access denied for user=%d to reservation id=%d", actor.ID, id)
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// Withdraw отзывает заявку. Доступно только владельцу и только пока решение не принято;
// запись удаляется.
func (s *Service) Withdraw(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Withdraw: user=%d withdrawing reservation id=%d", actor.ID, id)

	reservation, err := s.getByID(ctx, "Withdraw", id)
	if err != nil {
		return err
	}

	if reservation.RequesterID != actor.ID {
		s.logger.Warn("Withdraw: user=%d is not the owner of reservation id=%d", actor.ID, id)
		return ErrAccessDenied
	}

	if !reservation.CanBeWithdrawn() {
		s.logger.Warn("Withdraw: reservation id=%d is %s", id, reservation.Status)
		return ErrCannotWithdraw
	}

	if err := s.reservationRepo.DeletePending(ctx, id); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrNotPending):
			s.logger.Warn("Withdraw: reservation id=%d was decided concurrently", id)
			return ErrCannotWithdraw
		}
		s.logger.Error("Withdraw: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Withdraw - repository error: %v", ErrInternal, err)
	}

	s.staleMarker.MarkStale(ctx, reservation.Date)

	s.logger.Info("Withdraw: reservation id=%d withdrawn", id)
	return nil
}

// Notifications возвращает решения по заявкам пользователя, новые первыми
func (s *Service) Notifications(ctx context.Context, actor domain.Actor) (*models.ReservationListResponse, error) {
	reservations, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		RequesterID: &actor.ID,
		DecidedOnly: true,
	})
	if err != nil {
		s.logger.Error("Notifications: repository error for user=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: Notifications - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// Вспомогательные методы

func (s *Service) getByID(ctx context.Context, method string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", method, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return reservation, nil
}

// checkAccess владелец или администратор
func checkAccess(actor domain.Actor, reservation *domain.Reservation) error {
	if actor.IsAdmin() || reservation.RequesterID == actor.ID {
		return nil
	}
	return ErrAccessDenied
}
