package edit_booking

import (
	"context"

	"github.com/nordco/NC-BookingClient/internal/service/events"
	editBooking "github.com/nordco/NC-BookingClient/internal/usecase/edit_booking"
)

// EditBookingUseCase интерфейс use case изменения бронирований
type EditBookingUseCase interface {
	Update(ctx context.Context, req *editBooking.UpdateRequest) error
	Delete(ctx context.Context, req *editBooking.DeleteRequest) error
}

// StoreRegistry интерфейс реестра event store по сессиям
type StoreRegistry interface {
	Get(token string, role events.Role) *events.Store
	Invalidate(token string)
}

// UseCaseFactory собирает use case поверх store текущей сессии
type UseCaseFactory func(store *events.Store) EditBookingUseCase

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
