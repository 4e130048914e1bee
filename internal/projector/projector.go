// Package projector реализует чистую проекцию доступных слотов:
// (окна доступности, бронирования, размер слота) -> события календаря.
// Результат пересчитывается с нуля на каждом refresh и нигде не хранится.
package projector

import (
	"time"

	"github.com/nordco/NC-BookingClient/internal/domain"
)

// Result результат проекции
type Result struct {
	// Events: сначала available-слоты в порядке окон и хронологии,
	// затем booked-события в порядке входа. Порядок детерминирован.
	Events []domain.CalendarEvent

	// MalformedBookingIDs бронирования с end <= start - аномалия данных.
	// Они исключены из подавления слотов; логирование на стороне вызывающего.
	MalformedBookingIDs []int64
}

// Project строит события календаря из окон доступности и бронирований.
// slotSize - размер слота в минутах, loc - бизнес-таймзона для локальных
// времен окон. Все интервалы полуоткрытые [start, end).
func Project(
	windows []domain.AvailabilityWindow,
	bookings []domain.BookingRecord,
	slotSize int,
	loc *time.Location,
) Result {
	if slotSize <= 0 {
		slotSize = domain.DefaultSlotSizeMinutes
	}
	if loc == nil {
		loc = time.UTC
	}

	// Шаг 1: конвертируем бронирования в booked-события
	// Записи без одного из таймстемпов отбрасываются полностью
	bookedEvents := make([]domain.CalendarEvent, 0, len(bookings))
	suppressors := make([]domain.CalendarEvent, 0, len(bookings))
	var malformed []int64

	for _, b := range bookings {
		if !b.HasTimestamps() {
			continue
		}

		event := domain.NewBookedEvent(b)
		bookedEvents = append(bookedEvents, event)

		// Бронирование с end <= start не участвует в подавлении слотов
		if !b.IsWellFormed() {
			malformed = append(malformed, b.ID)
			continue
		}
		suppressors = append(suppressors, event)
	}

	// Шаги 2-5: нарезаем каждое окно на слоты фиксированного размера
	// Пересекающиеся окна не сливаются - каждое даёт независимый поток слотов
	step := time.Duration(slotSize) * time.Minute
	available := make([]domain.CalendarEvent, 0)

	for _, w := range windows {
		// Нулевые и перевернутые окна не производят слотов
		if w.IsInverted() {
			continue
		}

		windowStart, err := w.StartAt(loc)
		if err != nil {
			continue
		}
		windowEnd, err := w.EndAt(loc)
		if err != nil {
			continue
		}

		// Идем по окну с фиксированным шагом; неполный хвостовой слот
		// отбрасывается - в него нельзя надежно уместить услугу
		for cursor := windowStart; !cursor.Add(step).After(windowEnd); cursor = cursor.Add(step) {
			slotEnd := cursor.Add(step)

			if overlapsAny(cursor, slotEnd, suppressors) {
				continue
			}

			available = append(available, domain.NewAvailableEvent(cursor, slotEnd, w.ID))
		}
	}

	// Шаг 6: available в порядке окно-затем-хронология, booked в порядке входа
	events := make([]domain.CalendarEvent, 0, len(available)+len(bookedEvents))
	events = append(events, available...)
	events = append(events, bookedEvents...)

	return Result{
		Events:              events,
		MalformedBookingIDs: malformed,
	}
}

// overlapsAny проверяет пересечение кандидата [start, end) хотя бы с одним
// booked-событием по полуоткрытому правилу: a0 < b1 && b0 < a1
func overlapsAny(start, end time.Time, booked []domain.CalendarEvent) bool {
	for _, b := range booked {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
