package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

// mockBackend мок клиента бэкенда с переопределяемыми функциями
type mockBackend struct {
	listAvailabilityFunc   func(ctx context.Context, admin bool) ([]salonapi.Availability, error)
	listAllBookingsFunc    func(ctx context.Context, admin bool) ([]salonapi.Booking, error)
	listMyBookingsFunc     func(ctx context.Context) ([]salonapi.Booking, error)
	listServicesFunc       func(ctx context.Context, admin bool) ([]salonapi.Service, error)
	createBookingFunc      func(ctx context.Context, req salonapi.CreateBookingRequest, admin bool) error
	updateBookingFunc      func(ctx context.Context, id int64, req salonapi.UpdateBookingRequest, admin bool) error
	deleteBookingFunc      func(ctx context.Context, id int64, admin bool) error
	createAvailabilityFunc func(ctx context.Context, req salonapi.CreateAvailabilityRequest) error
	deleteAvailabilityFunc func(ctx context.Context, id int64) error
}

func (m *mockBackend) ListAvailability(ctx context.Context, admin bool) ([]salonapi.Availability, error) {
	if m.listAvailabilityFunc != nil {
		return m.listAvailabilityFunc(ctx, admin)
	}
	return nil, nil
}

func (m *mockBackend) ListAllBookings(ctx context.Context, admin bool) ([]salonapi.Booking, error) {
	if m.listAllBookingsFunc != nil {
		return m.listAllBookingsFunc(ctx, admin)
	}
	return nil, nil
}

func (m *mockBackend) ListMyBookings(ctx context.Context) ([]salonapi.Booking, error) {
	if m.listMyBookingsFunc != nil {
		return m.listMyBookingsFunc(ctx)
	}
	return nil, nil
}

func (m *mockBackend) ListServices(ctx context.Context, admin bool) ([]salonapi.Service, error) {
	if m.listServicesFunc != nil {
		return m.listServicesFunc(ctx, admin)
	}
	return nil, nil
}

func (m *mockBackend) CreateBooking(ctx context.Context, req salonapi.CreateBookingRequest, admin bool) error {
	if m.createBookingFunc != nil {
		return m.createBookingFunc(ctx, req, admin)
	}
	return nil
}

func (m *mockBackend) UpdateBooking(ctx context.Context, id int64, req salonapi.UpdateBookingRequest, admin bool) error {
	if m.updateBookingFunc != nil {
		return m.updateBookingFunc(ctx, id, req, admin)
	}
	return nil
}

func (m *mockBackend) DeleteBooking(ctx context.Context, id int64, admin bool) error {
	if m.deleteBookingFunc != nil {
		return m.deleteBookingFunc(ctx, id, admin)
	}
	return nil
}

func (m *mockBackend) CreateAvailability(ctx context.Context, req salonapi.CreateAvailabilityRequest) error {
	if m.createAvailabilityFunc != nil {
		return m.createAvailabilityFunc(ctx, req)
	}
	return nil
}

func (m *mockBackend) DeleteAvailability(ctx context.Context, id int64) error {
	if m.deleteAvailabilityFunc != nil {
		return m.deleteAvailabilityFunc(ctx, id)
	}
	return nil
}

func newTestStore(backend BackendClient, role Role) *Store {
	return NewStore(backend, Config{
		Role:            role,
		SlotSizeMinutes: 30,
		Location:        time.UTC,
	}, testLogger{})
}

func TestRefresh_BuildsSnapshot(t *testing.T) {
	backend := &mockBackend{
		listAvailabilityFunc: func(ctx context.Context, admin bool) ([]salonapi.Availability, error) {
			return []salonapi.Availability{
				{ID: 1, Date: "2024-01-01", StartTime: "09:00:00", EndTime: "10:00:00"},
			}, nil
		},
		listAllBookingsFunc: func(ctx context.Context, admin bool) ([]salonapi.Booking, error) {
			return []salonapi.Booking{
				{ID: 7, DateTime: "2024-01-01T09:30:00Z", EndTime: "2024-01-01T10:00:00Z", UserName: "Anna"},
			}, nil
		},
		listServicesFunc: func(ctx context.Context, admin bool) ([]salonapi.Service, error) {
			return []salonapi.Service{{ID: 1, Name: "Cut", Worktime: "00:30:00", Price: "45.00"}}, nil
		},
	}

	store := newTestStore(backend, RoleCustomer)
	require.NoError(t, store.Refresh(context.Background()))

	state := store.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.LastError)
	require.Len(t, state.Snapshot.Services, 1)
	require.Len(t, state.Snapshot.Windows, 1)

	// Окно 09:00-10:00 с бронированием 09:30-10:00: один слот + одно booked
	var available, booked int
	for _, e := range state.Snapshot.Events {
		switch e.Kind {
		case domain.EventAvailable:
			available++
		case domain.EventBooked:
			booked++
		}
	}
	assert.Equal(t, 1, available)
	assert.Equal(t, 1, booked)
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	var fail atomic.Bool
	backend := &mockBackend{
		listServicesFunc: func(ctx context.Context, admin bool) ([]salonapi.Service, error) {
			if fail.Load() {
				return nil, errors.New("connection refused")
			}
			return []salonapi.Service{{ID: 1, Name: "Cut"}}, nil
		},
	}

	store := newTestStore(backend, RoleCustomer)
	require.NoError(t, store.Refresh(context.Background()))
	require.Len(t, store.Snapshot().Services, 1)

	fail.Store(true)
	err := store.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRefreshFailed)

	// Предыдущий снапшот остался, ошибка опубликована, loading сброшен
	state := store.State()
	assert.Len(t, state.Snapshot.Services, 1)
	assert.NotEmpty(t, state.LastError)
	assert.False(t, state.Loading)
}

func TestRefresh_LastDispatchWins(t *testing.T) {
	// Первый диспатч зависает и завершается после второго: его ответ
	// должен быть отброшен, опубликованные данные - от второго диспатча
	firstStarted := make(chan struct{})
	gate := make(chan struct{})
	var calls atomic.Int64

	backend := &mockBackend{
		listServicesFunc: func(ctx context.Context, admin bool) ([]salonapi.Service, error) {
			n := calls.Add(1)
			if n == 1 {
				close(firstStarted)
				<-gate
				return []salonapi.Service{{ID: 1, Name: "stale"}}, nil
			}
			return []salonapi.Service{{ID: 2, Name: "fresh"}}, nil
		},
	}

	store := newTestStore(backend, RoleCustomer)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = store.Refresh(context.Background())
	}()

	<-firstStarted
	require.NoError(t, store.Refresh(context.Background()))

	close(gate)
	wg.Wait()

	services := store.Snapshot().Services
	require.Len(t, services, 1)
	assert.Equal(t, "fresh", services[0].Name)
	assert.False(t, store.State().Loading)
}

func TestRefresh_CustomerMergesOwnBookings(t *testing.T) {
	backend := &mockBackend{
		listAllBookingsFunc: func(ctx context.Context, admin bool) ([]salonapi.Booking, error) {
			return []salonapi.Booking{
				{ID: 1, DateTime: "2024-01-01T09:00:00Z", EndTime: "2024-01-01T09:30:00Z", UserName: "Anna"},
				{ID: 2, DateTime: "2024-01-01T10:00:00Z", EndTime: "2024-01-01T10:30:00Z", UserName: "Me"},
			}, nil
		},
		listMyBookingsFunc: func(ctx context.Context) ([]salonapi.Booking, error) {
			return []salonapi.Booking{
				{ID: 2, DateTime: "2024-01-01T10:00:00Z", EndTime: "2024-01-01T10:30:00Z", UserName: "Me"},
			}, nil
		},
	}

	store := newTestStore(backend, RoleCustomer)
	require.NoError(t, store.Refresh(context.Background()))

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Events, 2)

	// Собственное бронирование не задублировано и помечено как свое
	own, ok := snapshot.FindBooking(2)
	require.True(t, ok)
	assert.True(t, own.Booking.Mine)
	assert.Equal(t, "My Booking", own.Booking.Title)

	other, ok := snapshot.FindBooking(1)
	require.True(t, ok)
	assert.False(t, other.Booking.Mine)
	assert.Equal(t, "Anna", other.Booking.Title)
}

func TestRefresh_AdminSkipsMyBookings(t *testing.T) {
	var mineCalled atomic.Bool
	backend := &mockBackend{
		listMyBookingsFunc: func(ctx context.Context) ([]salonapi.Booking, error) {
			mineCalled.Store(true)
			return nil, nil
		},
	}

	store := newTestStore(backend, RoleAdmin)
	require.NoError(t, store.Refresh(context.Background()))
	assert.False(t, mineCalled.Load())
}

func TestCreateBooking_SuccessTriggersRefresh(t *testing.T) {
	var refreshes atomic.Int64
	backend := &mockBackend{
		listServicesFunc: func(ctx context.Context, admin bool) ([]salonapi.Service, error) {
			refreshes.Add(1)
			return nil, nil
		},
	}

	store := newTestStore(backend, RoleCustomer)
	err := store.CreateBooking(context.Background(), CreateBookingInput{
		ServiceIDs: []int64{1},
		StartAt:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), refreshes.Load())
}

func TestUpdateBooking_FailureDoesNotRefresh(t *testing.T) {
	var refreshes atomic.Int64
	backend := &mockBackend{
		listServicesFunc: func(ctx context.Context, admin bool) ([]salonapi.Service, error) {
			refreshes.Add(1)
			return nil, nil
		},
		updateBookingFunc: func(ctx context.Context, id int64, req salonapi.UpdateBookingRequest, admin bool) error {
			return salonapi.ErrUnavailable
		},
	}

	store := newTestStore(backend, RoleCustomer)
	err := store.UpdateBooking(context.Background(), 5, BookingPatch{})

	assert.ErrorIs(t, err, salonapi.ErrUnavailable)
	assert.Equal(t, int64(0), refreshes.Load())
	assert.False(t, store.State().Loading)
}

func TestDeleteAvailability_DeduplicatesAndReportsPartialFailure(t *testing.T) {
	var deleted []int64
	var refreshes atomic.Int64

	backend := &mockBackend{
		listServicesFunc: func(ctx context.Context, admin bool) ([]salonapi.Service, error) {
			refreshes.Add(1)
			return nil, nil
		},
		deleteAvailabilityFunc: func(ctx context.Context, id int64) error {
			deleted = append(deleted, id)
			if id == 2 {
				return salonapi.ErrUnavailable
			}
			return nil
		},
	}

	store := newTestStore(backend, RoleAdmin)
	err := store.DeleteAvailability(context.Background(), []int64{1, 2, 2, 3})

	// Дубликат не удалялся дважды, частичный сбой все равно вызвал refresh
	assert.Equal(t, []int64{1, 2, 3}, deleted)
	assert.ErrorIs(t, err, ErrPartialDelete)
	assert.Equal(t, int64(1), refreshes.Load())
}

func TestState_ErrorAutoDismissedAfterTTL(t *testing.T) {
	backend := &mockBackend{
		listServicesFunc: func(ctx context.Context, admin bool) ([]salonapi.Service, error) {
			return nil, errors.New("boom")
		},
	}

	store := NewStore(backend, Config{
		Role:      RoleCustomer,
		Location:  time.UTC,
		NoticeTTL: 10 * time.Second,
	}, testLogger{})

	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store.clock = clock

	require.Error(t, store.Refresh(context.Background()))
	assert.NotEmpty(t, store.State().LastError)

	// Внутри TTL уведомление еще видно
	clock.advance(5 * time.Second)
	assert.NotEmpty(t, store.State().LastError)

	// После TTL уведомление погашено
	clock.advance(6 * time.Second)
	assert.Empty(t, store.State().LastError)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestRegistry_SessionLifecycle(t *testing.T) {
	registry := NewRegistry(func(role Role) *Store {
		return newTestStore(&mockBackend{}, role)
	})

	a := registry.Get("token-a", RoleCustomer)
	assert.Same(t, a, registry.Get("token-a", RoleCustomer))

	// Другая роль того же токена - отдельный store
	assert.NotSame(t, a, registry.Get("token-a", RoleAdmin))
	assert.Equal(t, 2, registry.Len())

	registry.Invalidate("token-a")
	assert.Equal(t, 0, registry.Len())
}
