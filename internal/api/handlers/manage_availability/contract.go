package manage_availability

import (
	"context"

	"github.com/nordco/NC-BookingClient/internal/service/events"
	manageAvailability "github.com/nordco/NC-BookingClient/internal/usecase/manage_availability"
)

// ManageAvailabilityUseCase интерфейс use case управления окнами доступности
type ManageAvailabilityUseCase interface {
	Create(ctx context.Context, req *manageAvailability.CreateRequest) error
	Delete(ctx context.Context, req *manageAvailability.DeleteRequest) (*manageAvailability.DeleteResponse, error)
}

// StoreRegistry интерфейс реестра event store по сессиям
type StoreRegistry interface {
	Get(token string, role events.Role) *events.Store
	Invalidate(token string)
}

// UseCaseFactory собирает use case поверх store текущей сессии
type UseCaseFactory func(store *events.Store) ManageAvailabilityUseCase

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
