package get_calendar

import (
	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
	"github.com/nordco/NC-BookingClient/internal/service/events"
	"github.com/nordco/NC-BookingClient/pkg/ptr"
)

// EventResponse HTTP модель календарного события
type EventResponse struct {
	Start string `json:"start"` // UTC, ISO8601
	End   string `json:"end"`   // UTC, ISO8601
	Kind  string `json:"kind"`

	// Поля booked-событий
	BookingID *int64 `json:"bookingId,omitempty"`
	Title     string `json:"title,omitempty"`
	Mine      bool   `json:"mine,omitempty"`
	Notes     string `json:"notes,omitempty"`

	// Поля available-событий
	AvailabilityID *int64 `json:"availabilityId,omitempty"`
}

// CalendarResponse HTTP модель состояния календаря
type CalendarResponse struct {
	Events      []EventResponse `json:"events"`
	Loading     bool            `json:"loading"`
	LastError   string          `json:"lastError,omitempty"`
	RefreshedAt string          `json:"refreshedAt,omitempty"`
}

// FromState конвертирует состояние store в HTTP response
func FromState(state events.State) *CalendarResponse {
	resp := &CalendarResponse{
		Events:    make([]EventResponse, 0, len(state.Snapshot.Events)),
		Loading:   state.Loading,
		LastError: state.LastError,
	}

	if !state.Snapshot.RefreshedAt.IsZero() {
		resp.RefreshedAt = salonapi.FormatInstant(state.Snapshot.RefreshedAt)
	}

	for _, e := range state.Snapshot.Events {
		event := EventResponse{
			Start: salonapi.FormatInstant(e.Start),
			End:   salonapi.FormatInstant(e.End),
			Kind:  string(e.Kind),
		}

		if e.Kind == domain.EventBooked && e.Booking != nil {
			event.BookingID = ptr.Ptr(e.Booking.BookingID)
			event.Title = e.Booking.Title
			event.Mine = e.Booking.Mine
			event.Notes = e.Booking.Notes
		}

		if e.Kind == domain.EventAvailable && e.Available != nil {
			event.AvailabilityID = ptr.Ptr(e.Available.AvailabilityID)
		}

		resp.Events = append(resp.Events, event)
	}

	return resp
}
