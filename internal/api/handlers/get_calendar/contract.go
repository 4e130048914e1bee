package get_calendar

import (
	"github.com/nordco/NC-BookingClient/internal/service/events"
)

// StoreRegistry интерфейс реестра event store по сессиям
type StoreRegistry interface {
	Get(token string, role events.Role) *events.Store
	Invalidate(token string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
