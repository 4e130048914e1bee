// Package events содержит Booking Event Store: владеет циклом запросов к
// бэкенду и производным набором событий календаря. Бэкенд - источник
// истины; проекция слотов здесь носит рекомендательный характер и может
// устареть между refresh-циклами.
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
	"github.com/nordco/NC-BookingClient/internal/projector"
)

// Config конфигурация store
type Config struct {
	Role            Role
	SlotSizeMinutes int
	Location        *time.Location
	// NoticeTTL время жизни ошибки в публикуемом состоянии до авто-сброса
	NoticeTTL time.Duration
}

// Store поддерживает производное состояние календаря для одной сессии.
// Все опубликованные снапшоты неизменяемы: обновление - это замена целиком.
type Store struct {
	client  BackendClient
	cfg     Config
	log     Logger
	metrics MetricsObserver
	clock   TimeProvider

	mu sync.Mutex
	// seq монотонно растущий токен диспатча refresh
	// Применяется только ответ последнего диспатча - "last write wins"
	// по порядку отправки, не по порядку завершения
	seq      uint64
	inflight int
	snapshot Snapshot
	lastErr  string
	errAt    time.Time
}

// NewStore создает новый event store
func NewStore(client BackendClient, cfg Config, log Logger) *Store {
	if cfg.SlotSizeMinutes <= 0 {
		cfg.SlotSizeMinutes = domain.DefaultSlotSizeMinutes
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.NoticeTTL <= 0 {
		cfg.NoticeTTL = domain.DefaultErrorNoticeSeconds * time.Second
	}

	return &Store{
		client: client,
		cfg:    cfg,
		log:    log,
		clock:  &RealTimeProvider{},
	}
}

// WithMetrics подключает сбор метрик refresh-циклов
func (s *Store) WithMetrics(m MetricsObserver) *Store {
	s.metrics = m
	return s
}

// State возвращает опубликованное состояние store
// Ошибка старше NoticeTTL считается погашенной и не публикуется
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	lastErr := s.lastErr
	if lastErr != "" && s.clock.Now().Sub(s.errAt) > s.cfg.NoticeTTL {
		lastErr = ""
		s.lastErr = ""
	}

	return State{
		Snapshot:  s.snapshot,
		Loading:   s.inflight > 0,
		LastError: lastErr,
	}
}

// Snapshot возвращает текущий снапшот событий
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Role возвращает роль store
func (s *Store) Role() Role {
	return s.cfg.Role
}

// Location возвращает бизнес-таймзону store
func (s *Store) Location() *time.Location {
	return s.cfg.Location
}

// SlotSize возвращает размер слота в минутах
func (s *Store) SlotSize() int {
	return s.cfg.SlotSizeMinutes
}

// Refresh получает свежие данные и атомарно заменяет снапшот.
// Конкурентные вызовы безопасны: применяется только ответ последнего
// диспатча, устаревшие ответы молча отбрасываются. При ошибке предыдущий
// снапшот остается на месте (stale-but-present лучше пустого календаря).
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.inflight++
	s.mu.Unlock()

	// Гарантия: loading сбрасывается на любом пути выхода
	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	snapshot, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		// Ответ устаревшего диспатча - после него уже отправлялся новый refresh
		s.log.Info("Refresh: discarding out-of-order response (token=%d, latest=%d)", token, s.seq)
		s.observeRefresh("stale")
		return nil
	}

	if err != nil {
		s.log.Error("Refresh: fetch failed: %v", err)
		s.lastErr = "Could not fetch events. Please try again."
		s.errAt = s.clock.Now()
		s.observeRefresh("failed")
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	s.snapshot = *snapshot
	s.lastErr = ""
	s.observeRefresh("applied")

	s.log.Info("Refresh: applied snapshot with %d events, %d services (role=%s)",
		len(snapshot.Events), len(snapshot.Services), s.cfg.Role)
	return nil
}

// fetch конкурентно получает доступность, бронирования и услуги
// и прогоняет их через проектор слотов
func (s *Store) fetch(ctx context.Context) (*Snapshot, error) {
	admin := s.cfg.Role == RoleAdmin

	var (
		wg           sync.WaitGroup
		availability []salonapi.Availability
		allBookings  []salonapi.Booking
		myBookings   []salonapi.Booking
		services     []salonapi.Service

		availabilityErr, allErr, mineErr, servicesErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		availability, availabilityErr = s.client.ListAvailability(ctx, admin)
	}()
	go func() {
		defer wg.Done()
		allBookings, allErr = s.client.ListAllBookings(ctx, admin)
	}()
	go func() {
		defer wg.Done()
		services, servicesErr = s.client.ListServices(ctx, admin)
	}()

	// Собственные бронирования существуют только в клиентском потоке:
	// админ видит все бронирования с именами и без того
	if !admin {
		wg.Add(1)
		go func() {
			defer wg.Done()
			myBookings, mineErr = s.client.ListMyBookings(ctx)
		}()
	}

	wg.Wait()

	for _, err := range []error{availabilityErr, allErr, mineErr, servicesErr} {
		if err != nil {
			return nil, err
		}
	}

	bookings := mergeBookings(allBookings, myBookings)

	windows := make([]domain.AvailabilityWindow, 0, len(availability))
	for _, a := range availability {
		w, err := a.ToDomain()
		if err != nil {
			// Аномалия данных: окно пропускается, refresh продолжается
			s.log.Warn("Refresh: skipping malformed availability id=%d: %v", a.ID, err)
			continue
		}
		windows = append(windows, w)
	}

	result := projector.Project(windows, bookings, s.cfg.SlotSizeMinutes, s.cfg.Location)
	for _, id := range result.MalformedBookingIDs {
		s.log.Warn("Refresh: booking id=%d has end <= start, excluded from slot suppression", id)
	}

	domainServices := make([]domain.Service, 0, len(services))
	for _, svc := range services {
		domainServices = append(domainServices, svc.ToDomain())
	}

	return &Snapshot{
		Events:      result.Events,
		Windows:     windows,
		Services:    domainServices,
		RefreshedAt: s.clock.Now(),
	}, nil
}

// mergeBookings объединяет общий список с собственными бронированиями:
// свои записи исключаются из общего списка во избежание дублей и
// помечаются как принадлежащие текущему пользователю
func mergeBookings(all, mine []salonapi.Booking) []domain.BookingRecord {
	mineIDs := make(map[int64]bool, len(mine))
	for _, b := range mine {
		mineIDs[b.ID] = true
	}

	records := make([]domain.BookingRecord, 0, len(all)+len(mine))
	for _, b := range all {
		if mineIDs[b.ID] {
			continue
		}
		records = append(records, b.ToDomain(false))
	}
	for _, b := range mine {
		records = append(records, b.ToDomain(true))
	}
	return records
}

// CreateBookingInput данные для создания бронирования
type CreateBookingInput struct {
	ServiceIDs []int64
	StartAt    time.Time
	Notes      string
	// ForUser ID пользователя, от имени которого бронирует админ
	ForUser *int64
}

// CreateBooking отправляет бронирование на бэкенд
// Ровно один сетевой вызов; refresh только при успехе
func (s *Store) CreateBooking(ctx context.Context, input CreateBookingInput) error {
	s.track()
	defer s.untrack()

	req := salonapi.CreateBookingRequest{
		ServiceIDs: input.ServiceIDs,
		DateTime:   salonapi.FormatInstant(input.StartAt),
		Notes:      input.Notes,
		User:       input.ForUser,
	}

	if err := s.client.CreateBooking(ctx, req, s.cfg.Role == RoleAdmin); err != nil {
		s.log.Warn("CreateBooking: backend rejected booking: %v", err)
		return err
	}

	s.log.Info("CreateBooking: booking created, refreshing")
	return s.Refresh(ctx)
}

// BookingPatch частичное обновление бронирования
type BookingPatch struct {
	ServiceIDs []int64
	StartAt    *time.Time
	Notes      *string
}

// UpdateBooking отправляет патч бронирования на бэкенд
// При ошибке локальное состояние не меняется, автоматических ретраев нет
func (s *Store) UpdateBooking(ctx context.Context, id int64, patch BookingPatch) error {
	s.track()
	defer s.untrack()

	req := salonapi.UpdateBookingRequest{
		ServiceIDs: patch.ServiceIDs,
		Notes:      patch.Notes,
	}
	if patch.StartAt != nil {
		req.DateTime = salonapi.FormatInstant(*patch.StartAt)
	}

	if err := s.client.UpdateBooking(ctx, id, req, s.cfg.Role == RoleAdmin); err != nil {
		s.log.Warn("UpdateBooking: backend rejected update for booking id=%d: %v", id, err)
		return err
	}

	s.log.Info("UpdateBooking: booking id=%d updated, refreshing", id)
	return s.Refresh(ctx)
}

// DeleteBooking удаляет бронирование
func (s *Store) DeleteBooking(ctx context.Context, id int64) error {
	s.track()
	defer s.untrack()

	if err := s.client.DeleteBooking(ctx, id, s.cfg.Role == RoleAdmin); err != nil {
		s.log.Warn("DeleteBooking: backend rejected delete for booking id=%d: %v", id, err)
		return err
	}

	s.log.Info("DeleteBooking: booking id=%d deleted, refreshing", id)
	return s.Refresh(ctx)
}

// CreateAvailability создает окно доступности из выбранного диапазона
// Дата и локальные времена берутся в бизнес-таймзоне
func (s *Store) CreateAvailability(ctx context.Context, start, end time.Time) error {
	s.track()
	defer s.untrack()

	localStart := start.In(s.cfg.Location)
	localEnd := end.In(s.cfg.Location)

	req := salonapi.CreateAvailabilityRequest{
		Date:      localStart.Format(domain.DateFormat),
		StartTime: localStart.Format(domain.TimeFormat),
		EndTime:   localEnd.Format(domain.TimeFormat),
	}

	if err := s.client.CreateAvailability(ctx, req); err != nil {
		s.log.Warn("CreateAvailability: backend rejected window %s %s-%s: %v",
			req.Date, req.StartTime, req.EndTime, err)
		return err
	}

	s.log.Info("CreateAvailability: window %s %s-%s created, refreshing",
		req.Date, req.StartTime, req.EndTime)
	return s.Refresh(ctx)
}

// DeleteAvailability удаляет окна доступности: один вызов на ID,
// дубликаты исключаются. Частичный сбой все равно вызывает refresh -
// календарь должен отразить фактически удаленное подмножество
func (s *Store) DeleteAvailability(ctx context.Context, ids []int64) error {
	s.track()
	defer s.untrack()

	seen := make(map[int64]bool, len(ids))
	var failed int

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if err := s.client.DeleteAvailability(ctx, id); err != nil {
			s.log.Warn("DeleteAvailability: failed to delete window id=%d: %v", id, err)
			failed++
		}
	}

	refreshErr := s.Refresh(ctx)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d failed", ErrPartialDelete, failed, len(seen))
	}
	return refreshErr
}

func (s *Store) track() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Store) untrack() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *Store) observeRefresh(result string) {
	if s.metrics != nil {
		s.metrics.ObserveRefresh(result)
	}
}
