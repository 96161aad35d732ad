package create_reservation

import (
	"github.com/m04kA/SMC-LabReservation/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservation/internal/domain"
	createReservation "github.com/m04kA/SMC-LabReservation/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model.
// Заявитель берётся из сессии, а не из тела запроса.
type CreateReservationRequest struct {
	RoomID    int64  `json:"roomId"`
	Date      string `json:"date"`      // "2025-03-10"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "10:00"
	Purpose   string `json:"purpose"`
	Program   string `json:"program"`
	Section   string `json:"section"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(actor domain.Actor) (*createReservation.Request, error) {
	date, err := handlers.ParseDate("date", r.Date)
	if err != nil {
		return nil, err
	}

	start, err := handlers.ParseTime("startTime", r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := handlers.ParseTime("endTime", r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		Actor:     actor,
		RoomID:    r.RoomID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Purpose:   r.Purpose,
		Program:   r.Program,
		Section:   r.Section,
	}, nil
}
