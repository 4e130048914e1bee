package domain

import "time"

// BookingRecord represents a booking fetched from the backend.
// StartAt/EndAt абсолютные моменты времени; EndAt на бэкенде вычислен
// из суммарной длительности выбранных услуг.
type BookingRecord struct {
	ID         int64
	StartAt    time.Time
	EndAt      time.Time
	UserName   string
	Mine       bool // бронирование принадлежит текущему пользователю
	Notes      string
	ServiceIDs []int64
}

// HasTimestamps returns true if both start and end are present.
// Записи без одного из таймстемпов отбрасываются проектором.
func (b *BookingRecord) HasTimestamps() bool {
	return !b.StartAt.IsZero() && !b.EndAt.IsZero()
}

// IsWellFormed returns true for bookings with a positive [start, end) interval.
// Записи с end <= start считаются аномалией данных: они исключаются из
// подавления слотов, но не являются фатальной ошибкой.
func (b *BookingRecord) IsWellFormed() bool {
	return b.HasTimestamps() && b.StartAt.Before(b.EndAt)
}

// CanBeModified returns true if the booking starts at least notice away from now.
// Бронирования ближе к началу, чем notice, нельзя редактировать или удалять.
func (b *BookingRecord) CanBeModified(now time.Time, notice time.Duration) bool {
	return b.StartAt.Sub(now) >= notice
}
