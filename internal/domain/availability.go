package domain

import (
	"time"

	"github.com/nordco/NC-BookingClient/pkg/types"
)

// AvailabilityWindow represents an admin-declared span of bookable time on a given day.
// Owned by the backend; the client caches it read-only per refresh cycle.
type AvailabilityWindow struct {
	ID        int64
	Date      time.Time // календарный день, компонент времени игнорируется
	StartTime types.TimeString
	EndTime   types.TimeString
}

// StartAt returns the window's absolute start instant in the business timezone
func (w *AvailabilityWindow) StartAt(loc *time.Location) (time.Time, error) {
	return w.StartTime.At(w.Date, loc)
}

// EndAt returns the window's absolute end instant in the business timezone
func (w *AvailabilityWindow) EndAt(loc *time.Location) (time.Time, error) {
	return w.EndTime.At(w.Date, loc)
}

// IsInverted returns true for zero-length or inverted windows (end <= start)
// Такие окна не производят ни одного слота
func (w *AvailabilityWindow) IsInverted() bool {
	return !w.StartTime.IsBefore(w.EndTime)
}
