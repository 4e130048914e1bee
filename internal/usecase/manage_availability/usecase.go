package manage_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/nordco/NC-BookingClient/internal/service/events"
)

// UseCase use case для управления окнами доступности
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

// Create выполняет создание окна доступности из выделенного диапазона
func (uc *UseCase) Create(ctx context.Context, req *CreateRequest) error {
	uc.logger.Info("ManageAvailability: create window [%s, %s)",
		req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	// Шаг 1: Только администратор управляет окнами
	if uc.store.Role() != events.RoleAdmin {
		uc.logger.Warn("ManageAvailability: create rejected, admin role required")
		return ErrForbidden
	}

	// Шаг 2: Валидация диапазона
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.StartAt.Before(req.EndAt) {
		uc.logger.Warn("ManageAvailability: inverted or empty range")
		return ErrInvalidRange
	}

	// Окно живет внутри одного календарного дня бизнес-таймзоны
	loc := uc.store.Location()
	localStart := req.StartAt.In(loc)
	localEnd := req.EndAt.In(loc)
	sy, sm, sd := localStart.Date()
	ey, em, ed := localEnd.Date()
	if sy != ey || sm != em || sd != ed {
		uc.logger.Warn("ManageAvailability: range crosses midnight in business timezone")
		return fmt.Errorf("%w: range must not cross midnight", ErrInvalidRange)
	}

	if req.EndAt.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("ManageAvailability: range is entirely in the past")
		return ErrRangeInPast
	}

	// Шаг 3: Сетевой вызов; store сам запускает refresh при успехе
	if err := uc.store.CreateAvailability(ctx, req.StartAt, req.EndAt); err != nil {
		uc.logger.Error("ManageAvailability: backend rejected window: %v", err)
		return err
	}

	uc.logger.Info("ManageAvailability: window created")
	return nil
}

// Delete удаляет все окна доступности, пересекающие выделенный диапазон.
// Возвращает ID задетых окон; частичный сбой приходит от store
// как events.ErrPartialDelete.
func (uc *UseCase) Delete(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error) {
	uc.logger.Info("ManageAvailability: delete windows in [%s, %s)",
		req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	// Шаг 1: Только администратор управляет окнами
	if uc.store.Role() != events.RoleAdmin {
		uc.logger.Warn("ManageAvailability: delete rejected, admin role required")
		return nil, ErrForbidden
	}

	// Шаг 2: Валидация диапазона
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.StartAt.Before(req.EndAt) {
		return nil, ErrInvalidRange
	}

	// Шаг 3: Ищем задетые окна в текущем снапшоте
	snapshot := uc.store.Snapshot()
	ids := snapshot.WindowsOverlapping(req.StartAt, req.EndAt, uc.store.Location())
	if len(ids) == 0 {
		uc.logger.Warn("ManageAvailability: no windows in range")
		return nil, ErrNoWindowsInRange
	}

	// Шаг 4: Удаляем; store сам исключает дубликаты и запускает refresh
	if err := uc.store.DeleteAvailability(ctx, ids); err != nil {
		uc.logger.Error("ManageAvailability: delete failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ManageAvailability: deleted %d windows", len(ids))
	return &DeleteResponse{WindowIDs: ids}, nil
}
