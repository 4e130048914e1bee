package projector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/pkg/types"
)

func window(id int64, date string, start, end string) domain.AvailabilityWindow {
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		panic(err)
	}
	return domain.AvailabilityWindow{
		ID:        id,
		Date:      d,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func at(loc *time.Location, date string, clock string) time.Time {
	t, err := time.ParseInLocation(domain.DateFormat+" 15:04", date+" "+clock, loc)
	if err != nil {
		panic(err)
	}
	return t
}

func availableOf(events []domain.CalendarEvent) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, e := range events {
		if e.Kind == domain.EventAvailable {
			out = append(out, e)
		}
	}
	return out
}

func bookedOf(events []domain.CalendarEvent) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, e := range events {
		if e.Kind == domain.EventBooked {
			out = append(out, e)
		}
	}
	return out
}

func TestProject_EmptyBookings_FullSlicing(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name      string
		start     string
		end       string
		slotSize  int
		wantSlots int
	}{
		{
			name:      "exact multiple",
			start:     "09:00:00",
			end:       "11:00:00",
			slotSize:  30,
			wantSlots: 4,
		},
		{
			name:      "partial tail slot dropped",
			start:     "09:00:00",
			end:       "10:45:00",
			slotSize:  30,
			wantSlots: 3,
		},
		{
			name:      "window shorter than slot",
			start:     "09:00:00",
			end:       "09:15:00",
			slotSize:  30,
			wantSlots: 0,
		},
		{
			name:      "single slot window",
			start:     "09:00:00",
			end:       "09:30:00",
			slotSize:  30,
			wantSlots: 1,
		},
		{
			name:      "hour slots",
			start:     "08:00:00",
			end:       "20:30:00",
			slotSize:  60,
			wantSlots: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Project(
				[]domain.AvailabilityWindow{window(1, "2024-01-01", tt.start, tt.end)},
				nil,
				tt.slotSize,
				loc,
			)

			slots := availableOf(result.Events)
			require.Len(t, slots, tt.wantSlots)

			// Слоты покрывают [windowStart, windowStart + k*slotSize) без зазоров
			step := time.Duration(tt.slotSize) * time.Minute
			for i, slot := range slots {
				wantStart := at(loc, "2024-01-01", tt.start[:5]).Add(time.Duration(i) * step)
				assert.Equal(t, wantStart, slot.Start)
				assert.Equal(t, wantStart.Add(step), slot.End)
				require.NotNil(t, slot.Available)
				assert.True(t, slot.Available.Generated)
				assert.Equal(t, int64(1), slot.Available.AvailabilityID)
			}
		})
	}
}

func TestProject_OverlapSuppression(t *testing.T) {
	loc := time.UTC

	// Спецификация: окно 09:00-10:00, бронирование 09:30-10:00, слот 30 минут.
	// Ожидается ровно один available-слот 09:00-09:30 и одно booked-событие.
	booking := domain.BookingRecord{
		ID:       7,
		StartAt:  at(loc, "2024-01-01", "09:30"),
		EndAt:    at(loc, "2024-01-01", "10:00"),
		UserName: "Anna",
	}

	result := Project(
		[]domain.AvailabilityWindow{window(1, "2024-01-01", "09:00:00", "10:00:00")},
		[]domain.BookingRecord{booking},
		30,
		loc,
	)

	slots := availableOf(result.Events)
	require.Len(t, slots, 1)
	assert.Equal(t, at(loc, "2024-01-01", "09:00"), slots[0].Start)
	assert.Equal(t, at(loc, "2024-01-01", "09:30"), slots[0].End)

	booked := bookedOf(result.Events)
	require.Len(t, booked, 1)
	assert.Equal(t, at(loc, "2024-01-01", "09:30"), booked[0].Start)
	require.NotNil(t, booked[0].Booking)
	assert.Equal(t, int64(7), booked[0].Booking.BookingID)
	assert.Equal(t, "Anna", booked[0].Booking.Title)

	assert.Empty(t, result.MalformedBookingIDs)
}

func TestProject_SuppressionIsTotal(t *testing.T) {
	loc := time.UTC

	// Бронирование покрывает середину окна: каждый слот, пересекающий его
	// хотя бы частично, подавляется целиком
	booking := domain.BookingRecord{
		ID:      1,
		StartAt: at(loc, "2024-01-01", "09:45"),
		EndAt:   at(loc, "2024-01-01", "10:15"),
	}

	result := Project(
		[]domain.AvailabilityWindow{window(1, "2024-01-01", "09:00:00", "11:00:00")},
		[]domain.BookingRecord{booking},
		30,
		loc,
	)

	slots := availableOf(result.Events)
	require.Len(t, slots, 2)
	assert.Equal(t, at(loc, "2024-01-01", "09:00"), slots[0].Start)
	assert.Equal(t, at(loc, "2024-01-01", "10:30"), slots[1].Start)
}

func TestProject_BoundaryTouchIsNotOverlap(t *testing.T) {
	loc := time.UTC

	// Полуоткрытые интервалы: бронирование 09:30-10:00 граничит со слотами
	// 09:00-09:30 и 10:00-10:30, но не пересекает их
	booking := domain.BookingRecord{
		ID:      1,
		StartAt: at(loc, "2024-01-01", "09:30"),
		EndAt:   at(loc, "2024-01-01", "10:00"),
	}

	result := Project(
		[]domain.AvailabilityWindow{window(1, "2024-01-01", "09:00:00", "10:30:00")},
		[]domain.BookingRecord{booking},
		30,
		loc,
	)

	slots := availableOf(result.Events)
	require.Len(t, slots, 2)
	assert.Equal(t, at(loc, "2024-01-01", "09:00"), slots[0].Start)
	assert.Equal(t, at(loc, "2024-01-01", "10:00"), slots[1].Start)
}

func TestProject_InvertedAndZeroLengthWindows(t *testing.T) {
	loc := time.UTC

	result := Project(
		[]domain.AvailabilityWindow{
			window(1, "2024-01-01", "10:00:00", "10:00:00"), // нулевая длина
			window(2, "2024-01-01", "12:00:00", "11:00:00"), // перевернутое
		},
		nil,
		30,
		loc,
	)

	assert.Empty(t, availableOf(result.Events))
}

func TestProject_OverlappingWindowsProduceDuplicates(t *testing.T) {
	loc := time.UTC

	// Пересекающиеся окна не сливаются: оба производят независимые слоты,
	// дубликаты на одном инстанте допустимы
	result := Project(
		[]domain.AvailabilityWindow{
			window(1, "2024-01-01", "09:00:00", "10:00:00"),
			window(2, "2024-01-01", "09:30:00", "10:30:00"),
		},
		nil,
		30,
		loc,
	)

	slots := availableOf(result.Events)
	require.Len(t, slots, 4)

	// Окно-затем-хронология: сначала слоты окна 1, затем окна 2
	assert.Equal(t, int64(1), slots[0].Available.AvailabilityID)
	assert.Equal(t, int64(1), slots[1].Available.AvailabilityID)
	assert.Equal(t, int64(2), slots[2].Available.AvailabilityID)
	assert.Equal(t, int64(2), slots[3].Available.AvailabilityID)

	// Дубликат 09:30-10:00 присутствует дважды
	assert.Equal(t, slots[1].Start, slots[2].Start)
}

func TestProject_MalformedBookings(t *testing.T) {
	loc := time.UTC

	bookings := []domain.BookingRecord{
		{
			// Отсутствует конец - запись отбрасывается целиком
			ID:      1,
			StartAt: at(loc, "2024-01-01", "09:00"),
		},
		{
			// end <= start - аномалия: событие есть, подавления нет
			ID:      2,
			StartAt: at(loc, "2024-01-01", "09:30"),
			EndAt:   at(loc, "2024-01-01", "09:00"),
		},
	}

	result := Project(
		[]domain.AvailabilityWindow{window(1, "2024-01-01", "09:00:00", "10:00:00")},
		bookings,
		30,
		loc,
	)

	// Аномальное бронирование ничего не подавило
	assert.Len(t, availableOf(result.Events), 2)

	// Запись без end_time отброшена, аномальная попала в booked
	booked := bookedOf(result.Events)
	require.Len(t, booked, 1)
	assert.Equal(t, int64(2), booked[0].Booking.BookingID)

	assert.Equal(t, []int64{2}, result.MalformedBookingIDs)
}

func TestProject_BusinessTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)

	result := Project(
		[]domain.AvailabilityWindow{window(1, "2024-06-01", "09:00:00", "09:30:00")},
		nil,
		30,
		loc,
	)

	slots := availableOf(result.Events)
	require.Len(t, slots, 1)

	// 09:00 по Стокгольму летом = 07:00 UTC
	assert.Equal(t, time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC), slots[0].Start.UTC())
}

func TestProject_DeterministicOrder(t *testing.T) {
	loc := time.UTC

	windows := []domain.AvailabilityWindow{
		window(2, "2024-01-02", "09:00:00", "10:00:00"),
		window(1, "2024-01-01", "09:00:00", "10:00:00"),
	}
	bookings := []domain.BookingRecord{
		{ID: 5, StartAt: at(loc, "2024-01-03", "10:00"), EndAt: at(loc, "2024-01-03", "11:00")},
		{ID: 3, StartAt: at(loc, "2024-01-03", "08:00"), EndAt: at(loc, "2024-01-03", "09:00")},
	}

	first := Project(windows, bookings, 30, loc)
	second := Project(windows, bookings, 30, loc)
	assert.Equal(t, first, second)

	// booked-события сохраняют порядок входа, не хронологию
	booked := bookedOf(first.Events)
	require.Len(t, booked, 2)
	assert.Equal(t, int64(5), booked[0].Booking.BookingID)
	assert.Equal(t, int64(3), booked[1].Booking.BookingID)
}
