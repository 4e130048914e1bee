package edit_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/internal/service/events"
)

// UseCase use case для изменения и удаления бронирований
type UseCase struct {
	store        EventStore
	notice       time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// notice - минимальный срок до начала бронирования, в пределах которого
// клиент уже не может его изменить; администратора ограничение не касается.
func NewUseCase(store EventStore, notice time.Duration, logger Logger) *UseCase {
	if notice <= 0 {
		notice = domain.DefaultModificationNoticeHours * time.Hour
	}

	return &UseCase{
		store:        store,
		notice:       notice,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Update выполняет изменение бронирования
// Все локальные проверки выполняются до сетевого вызова
func (uc *UseCase) Update(ctx context.Context, req *UpdateRequest) error {
	uc.logger.Info("EditBooking: update booking id=%d", req.BookingID)

	// Шаг 1: Валидация входных данных
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// Шаг 2: Бронирование должно существовать и быть доступным для правки
	now := uc.timeProvider.Now()
	snapshot := uc.store.Snapshot()

	event, err := uc.modifiableBooking(snapshot, req.BookingID, now)
	if err != nil {
		uc.logger.Warn("EditBooking: update rejected for booking id=%d: %v", req.BookingID, err)
		return err
	}

	// Шаг 3: При переносе слота те же проверки, что и при создании.
	// Длительность берется по новому набору услуг, если он меняется,
	// иначе по текущему интервалу бронирования.
	if req.StartAt != nil {
		if err := uc.validateNewSlot(snapshot, event, *req.StartAt, now, req.ServiceIDs); err != nil {
			uc.logger.Warn("EditBooking: new slot rejected for booking id=%d: %v", req.BookingID, err)
			return err
		}
	}

	// Шаг 4: Единственный сетевой вызов; store сам запускает refresh при успехе
	patch := events.BookingPatch{
		ServiceIDs: req.ServiceIDs,
		StartAt:    req.StartAt,
		Notes:      req.Notes,
	}

	if err := uc.store.UpdateBooking(ctx, req.BookingID, patch); err != nil {
		uc.logger.Error("EditBooking: backend rejected update for booking id=%d: %v", req.BookingID, err)
		return err
	}

	uc.logger.Info("EditBooking: booking id=%d updated", req.BookingID)
	return nil
}

// Delete выполняет удаление бронирования
func (uc *UseCase) Delete(ctx context.Context, req *DeleteRequest) error {
	uc.logger.Info("EditBooking: delete booking id=%d", req.BookingID)

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	snapshot := uc.store.Snapshot()

	if _, err := uc.modifiableBooking(snapshot, req.BookingID, now); err != nil {
		uc.logger.Warn("EditBooking: delete rejected for booking id=%d: %v", req.BookingID, err)
		return err
	}

	if err := uc.store.DeleteBooking(ctx, req.BookingID); err != nil {
		uc.logger.Error("EditBooking: backend rejected delete for booking id=%d: %v", req.BookingID, err)
		return err
	}

	uc.logger.Info("EditBooking: booking id=%d deleted", req.BookingID)
	return nil
}

// modifiableBooking находит бронирование и проверяет право на его изменение.
// Клиент может менять только свои бронирования и только заранее;
// администратор свободен от обоих ограничений.
func (uc *UseCase) modifiableBooking(snapshot events.Snapshot, id int64, now time.Time) (domain.CalendarEvent, error) {
	event, ok := snapshot.FindBooking(id)
	if !ok {
		return domain.CalendarEvent{}, ErrBookingNotFound
	}

	if uc.store.Role() == events.RoleAdmin {
		return event, nil
	}

	if !event.Booking.Mine {
		return domain.CalendarEvent{}, ErrNotOwner
	}

	if event.Start.Sub(now) < uc.notice {
		return domain.CalendarEvent{}, ErrTooCloseToStart
	}

	return event, nil
}

// validateNewSlot проверяет новый слот при переносе бронирования
// Пересечение с самим переносимым бронированием не считается конфликтом
func (uc *UseCase) validateNewSlot(snapshot events.Snapshot, current domain.CalendarEvent, start time.Time, now time.Time, serviceIDs []int64) error {
	if start.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}
	if start.Before(now) {
		return ErrSlotInPast
	}

	duration, err := uc.newSlotDuration(snapshot, current, serviceIDs)
	if err != nil {
		return err
	}
	end := start.Add(duration)

	if !slotWithinAvailability(snapshot, start, end, uc.store.Location()) {
		return ErrOutsideAvailability
	}

	for _, e := range snapshot.Events {
		if e.Kind != domain.EventBooked {
			continue
		}
		if e.Booking != nil && current.Booking != nil && e.Booking.BookingID == current.Booking.BookingID {
			continue
		}
		if e.OverlapsRange(start, end) {
			return ErrSlotTaken
		}
	}

	return nil
}

// newSlotDuration возвращает длительность переносимого бронирования.
// При смене набора услуг считается сумма по новому набору из каталога
// снапшота, иначе берется текущий интервал бронирования.
func (uc *UseCase) newSlotDuration(snapshot events.Snapshot, current domain.CalendarEvent, serviceIDs []int64) (time.Duration, error) {
	if len(serviceIDs) == 0 {
		if d := current.End.Sub(current.Start); d > 0 {
			return d, nil
		}
		return time.Duration(uc.store.SlotSize()) * time.Minute, nil
	}

	byID := make(map[int64]domain.Service, len(snapshot.Services))
	for _, s := range snapshot.Services {
		byID[s.ID] = s
	}

	resolved := make([]domain.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		s, ok := byID[id]
		if !ok {
			return 0, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		resolved = append(resolved, s)
	}

	minutes := domain.TotalMinutes(resolved)
	if minutes <= 0 {
		minutes = float64(uc.store.SlotSize())
	}
	return time.Duration(minutes * float64(time.Minute)), nil
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
