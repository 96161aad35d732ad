package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// Request модели

// ListRequest запрос на получение списка бронирований
type ListRequest struct {
	Actor  domain.Actor
	Scope  domain.ReservationScope // mine (по умолчанию) или all
	Date   *time.Time              // Фильтр по дате (опционально)
	Status *string                 // Фильтр по статусу (опционально)
	RoomID *int64                  // Фильтр по аудитории (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр.
// Заявитель всегда видит только свои бронирования, даже при scope=all.
func (r *ListRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		RoomID: r.RoomID,
		Date:   r.Date,
	}

	switch r.Scope {
	case "", domain.ScopeMine:
		filter.RequesterID = &r.Actor.ID
	case domain.ScopeAll:
		if !r.Actor.IsAdmin() {
			filter.RequesterID = &r.Actor.ID
		}
	default:
		return filter, domain.NewValidationError("scope", "must be mine or all")
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64  `json:"id"`
	RoomID      int64  `json:"roomId"`
	RoomName    string `json:"roomName"`
	RequesterID int64  `json:"requesterId"`
	Date        string `json:"date"`      // "2025-03-10"
	StartTime   string `json:"startTime"` // "09:00"
	EndTime     string `json:"endTime"`   // "10:00"
	Purpose     string `json:"purpose"`
	Program     string `json:"program"`
	Section     string `json:"section"`
	Status      string `json:"status"`

	DecisionNotes *string `json:"decisionNotes,omitempty"`
	DecidedBy     *int64  `json:"decidedBy,omitempty"`
	DecidedAt     *string `json:"decidedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:            r.ID,
		RoomID:        r.RoomID,
		RoomName:      r.RoomName,
		RequesterID:   r.RequesterID,
		Date:          r.Date.Format(domain.DateFormat),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		Purpose:       r.Purpose,
		Program:       r.Program,
		Section:       r.Section,
		Status:        string(r.Status),
		DecisionNotes: r.DecisionNotes,
		DecidedBy:     r.DecidedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	if r.DecidedAt != nil {
		decidedStr := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}

	return resp
}

// ToDomainStatus конвертирует строку в статус бронирования
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	switch s := domain.ReservationStatus(status); s {
	case domain.StatusPending, domain.StatusApproved, domain.StatusDenied:
		return s, nil
	default:
		return "", domain.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
}
