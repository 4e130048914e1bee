package create_booking

import (
	"fmt"
	"time"

	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/internal/service/events"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, role events.Role) error {
	if len(req.ServiceIDs) == 0 {
		return ErrNoServicesSelected
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.StartAt.IsZero() {
		return ErrSlotNotSelected
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// Бронировать от имени другого пользователя может только администратор
	if req.ForUser != nil && role != events.RoleAdmin {
		return ErrForbidden
	}

	return nil
}

// resolveServices сопоставляет запрошенные ID с услугами из снапшота
func resolveServices(snapshot events.Snapshot, ids []int64) ([]domain.Service, error) {
	byID := make(map[int64]domain.Service, len(snapshot.Services))
	for _, s := range snapshot.Services {
		byID[s.ID] = s
	}

	resolved := make([]domain.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		resolved = append(resolved, s)
	}
	return resolved, nil
}

// bookingDuration возвращает длительность бронирования по суммарному
// времени услуг; при нулевой сумме падает на размер слота
func bookingDuration(services []domain.Service, slotSizeMinutes int) time.Duration {
	minutes := domain.TotalMinutes(services)
	if minutes <= 0 {
		minutes = float64(slotSizeMinutes)
	}
	return time.Duration(minutes * float64(time.Minute))
}

// slotWithinAvailability проверяет, что слот [start, end) целиком
// лежит внутри хотя бы одного окна доступности
func slotWithinAvailability(snapshot events.Snapshot, start, end time.Time, loc *time.Location) bool {
	for _, w := range snapshot.Windows {
		windowStart, err := w.StartAt(loc)
		if err != nil {
			continue
		}
		windowEnd, err := w.EndAt(loc)
		if err != nil {
			continue
		}

		if !start.Before(windowStart) && !end.After(windowEnd) {
			return true
		}
	}
	return false
}

// overlapsBooked проверяет пересечение слота с существующими бронированиями
func overlapsBooked(snapshot events.Snapshot, start, end time.Time) bool {
	for _, e := range snapshot.Events {
		if e.Kind == domain.EventBooked && e.OverlapsRange(start, end) {
			return true
		}
	}
	return false
}
