package create_booking

import (
	"context"
	"time"

	"github.com/nordco/NC-BookingClient/internal/service/events"
)

// EventStore интерфейс event store сессии
type EventStore interface {
	Snapshot() events.Snapshot
	Role() events.Role
	Location() *time.Location
	SlotSize() int
	CreateBooking(ctx context.Context, input events.CreateBookingInput) error
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
