package create_booking

import (
	"context"
	"time"

	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/internal/service/events"
)

// UseCase use case для создания бронирования
type UseCase struct {
	store        EventStore
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store EventStore, logger Logger) *UseCase {
	return &UseCase{
		store:        store,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Все локальные проверки выполняются до единственного сетевого вызова:
// при любом нарушении предусловий запрос к бэкенду не отправляется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: services=%v, start=%s", req.ServiceIDs, req.StartAt.Format(time.RFC3339))

	// Шаг 1: Валидация входных данных
	if err := validateRequest(req, uc.store.Role()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Шаг 2: Слот не должен быть в прошлом
	now := uc.timeProvider.Now()
	if req.StartAt.Before(now) {
		uc.logger.Warn("CreateBooking: slot %s is in the past", req.StartAt.Format(time.RFC3339))
		return nil, ErrSlotInPast
	}

	// Шаг 3: Сопоставляем услуги с каталогом из снапшота
	snapshot := uc.store.Snapshot()
	services, err := resolveServices(snapshot, req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// Шаг 4: Интервал бронирования целиком внутри окна доступности.
	// Конец интервала считается по суммарной длительности услуг, а не по размеру слота.
	endAt := req.StartAt.Add(bookingDuration(services, uc.store.SlotSize()))
	if !slotWithinAvailability(snapshot, req.StartAt, endAt, uc.store.Location()) {
		uc.logger.Warn("CreateBooking: interval [%s, %s) is outside working hours",
			req.StartAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
		return nil, ErrOutsideAvailability
	}

	// Шаг 5: Интервал не пересекается с существующими бронированиями
	if overlapsBooked(snapshot, req.StartAt, endAt) {
		uc.logger.Warn("CreateBooking: interval [%s, %s) overlaps an existing booking",
			req.StartAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
		return nil, ErrSlotTaken
	}

	// Шаг 6: Единственный сетевой вызов; store сам запускает refresh при успехе
	input := events.CreateBookingInput{
		ServiceIDs: req.ServiceIDs,
		StartAt:    req.StartAt,
		ForUser:    req.ForUser,
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}

	if err := uc.store.CreateBooking(ctx, input); err != nil {
		uc.logger.Error("CreateBooking: backend call failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking at %s", req.StartAt.Format(time.RFC3339))

	return &Response{
		StartAt:       req.StartAt,
		EndAt:         endAt,
		ServiceIDs:    req.ServiceIDs,
		TotalPrice:    domain.TotalPrice(services),
		TotalDuration: domain.FormatTotalDuration(services),
	}, nil
}
