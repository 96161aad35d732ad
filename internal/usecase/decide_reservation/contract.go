package decide_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/internal/service/conflicts"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	LockRoomDate(ctx context.Context, roomID int64, date time.Time) error
	UpdateDecision(ctx context.Context, id int64, decision domain.DecisionRecord) error
}

// ConflictDetector поиск пересекающихся бронирований
type ConflictDetector interface {
	Find(ctx context.Context, c conflicts.Candidate) (*domain.Reservation, error)
}

// StaleMarker получает сигнал, что представления на дату устарели
type StaleMarker interface {
	MarkStale(ctx context.Context, date time.Time)
}

// Metrics бизнес-метрики
type Metrics interface {
	DecisionRecorded(decision string)
	ConflictDetected(stage string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
