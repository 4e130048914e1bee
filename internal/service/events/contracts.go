package events

import (
	"context"
	"time"

	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

// BackendClient интерфейс клиента бэкенда бронирований
type BackendClient interface {
	ListAvailability(ctx context.Context, admin bool) ([]salonapi.Availability, error)
	ListAllBookings(ctx context.Context, admin bool) ([]salonapi.Booking, error)
	ListMyBookings(ctx context.Context) ([]salonapi.Booking, error)
	ListServices(ctx context.Context, admin bool) ([]salonapi.Service, error)

	CreateBooking(ctx context.Context, req salonapi.CreateBookingRequest, admin bool) error
	UpdateBooking(ctx context.Context, id int64, req salonapi.UpdateBookingRequest, admin bool) error
	DeleteBooking(ctx context.Context, id int64, admin bool) error
	CreateAvailability(ctx context.Context, req salonapi.CreateAvailabilityRequest) error
	DeleteAvailability(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsObserver интерфейс для метрик refresh-циклов
type MetricsObserver interface {
	ObserveRefresh(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
