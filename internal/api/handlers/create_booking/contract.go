package create_booking

import (
	"context"

	"github.com/nordco/NC-BookingClient/internal/service/events"
	createBooking "github.com/nordco/NC-BookingClient/internal/usecase/create_booking"
)

// CreateBookingUseCase интерфейс use case создания бронирования
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// StoreRegistry интерфейс реестра event store по сессиям
type StoreRegistry interface {
	Get(token string, role events.Role) *events.Store
	Invalidate(token string)
}

// UseCaseFactory собирает use case поверх store текущей сессии
type UseCaseFactory func(store *events.Store) CreateBookingUseCase

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
