package events

import (
	"time"

	"github.com/nordco/NC-BookingClient/internal/domain"
)

// Role определяет, какие эндпоинты бэкенда использует store
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Snapshot атомарный срез производного состояния календаря.
// Заменяется целиком на каждом успешном refresh - потребители никогда
// не видят наполовину обновленный набор.
type Snapshot struct {
	Events      []domain.CalendarEvent
	Windows     []domain.AvailabilityWindow
	Services    []domain.Service
	RefreshedAt time.Time
}

// FindBooking находит booked-событие по ID бронирования
func (s Snapshot) FindBooking(id int64) (domain.CalendarEvent, bool) {
	for _, e := range s.Events {
		if e.Kind == domain.EventBooked && e.Booking != nil && e.Booking.BookingID == id {
			return e, true
		}
	}
	return domain.CalendarEvent{}, false
}

// WindowsOverlapping возвращает ID окон доступности, пересекающих
// полуоткрытый диапазон [start, end); дубликаты исключены
func (s Snapshot) WindowsOverlapping(start, end time.Time, loc *time.Location) []int64 {
	seen := make(map[int64]bool)
	var ids []int64

	for _, w := range s.Windows {
		windowStart, err := w.StartAt(loc)
		if err != nil {
			continue
		}
		windowEnd, err := w.EndAt(loc)
		if err != nil {
			continue
		}

		if windowStart.Before(end) && start.Before(windowEnd) && !seen[w.ID] {
			seen[w.ID] = true
			ids = append(ids, w.ID)
		}
	}
	return ids
}

// State состояние store, публикуемое потребителям
type State struct {
	Snapshot Snapshot
	Loading  bool
	// LastError последняя ошибка refresh; пустая строка после авто-сброса
	LastError string
}
