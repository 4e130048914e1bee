package domain

import "time"

// EventKind вид календарного события
// Ровно один тег на событие - невозможные комбинации флагов исключены типом
type EventKind string

const (
	EventBooked      EventKind = "booked"
	EventAvailable   EventKind = "available"
	EventUnavailable EventKind = "unavailable"
	EventSelected    EventKind = "selected"
)

// CalendarEvent derived calendar event over the half-open interval [Start, End).
// Никогда не персистится - пересчитывается с нуля на каждом refresh.
type CalendarEvent struct {
	Start time.Time
	End   time.Time
	Kind  EventKind

	// Payload для EventBooked
	Booking *BookedPayload

	// Payload для EventAvailable
	Available *AvailablePayload
}

// BookedPayload данные исходного бронирования для booked-события
type BookedPayload struct {
	BookingID int64
	Title     string
	Mine      bool
	Notes     string
}

// AvailablePayload данные для available-события
type AvailablePayload struct {
	AvailabilityID int64
	Generated      bool // слот произведен проектором, а не выбран пользователем
}

// NewBookedEvent creates a booked event from a booking record
func NewBookedEvent(b BookingRecord) CalendarEvent {
	title := b.UserName
	if b.Mine {
		title = "My Booking"
	}
	if title == "" {
		title = "Unknown User"
	}

	return CalendarEvent{
		Start: b.StartAt,
		End:   b.EndAt,
		Kind:  EventBooked,
		Booking: &BookedPayload{
			BookingID: b.ID,
			Title:     title,
			Mine:      b.Mine,
			Notes:     b.Notes,
		},
	}
}

// NewAvailableEvent creates a generated available slot event
func NewAvailableEvent(start, end time.Time, availabilityID int64) CalendarEvent {
	return CalendarEvent{
		Start: start,
		End:   end,
		Kind:  EventAvailable,
		Available: &AvailablePayload{
			AvailabilityID: availabilityID,
			Generated:      true,
		},
	}
}

// NewSelectedEvent creates an event for a user-selected time range
func NewSelectedEvent(start, end time.Time) CalendarEvent {
	return CalendarEvent{
		Start: start,
		End:   end,
		Kind:  EventSelected,
	}
}

// Overlaps reports whether two half-open intervals [a0,a1) and [b0,b1) intersect:
// a0 < b1 AND b0 < a1. Граничащие интервалы пересечением не считаются.
func (e CalendarEvent) Overlaps(other CalendarEvent) bool {
	return e.Start.Before(other.End) && other.Start.Before(e.End)
}

// OverlapsRange reports whether the event intersects the half-open range [start, end)
func (e CalendarEvent) OverlapsRange(start, end time.Time) bool {
	return e.Start.Before(end) && start.Before(e.End)
}
