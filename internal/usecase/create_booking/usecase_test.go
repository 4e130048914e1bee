package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/internal/service/events"
	"github.com/nordco/NC-BookingClient/pkg/ptr"
	"github.com/nordco/NC-BookingClient/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// mockStore мок event store с переопределяемыми функциями
type mockStore struct {
	snapshot          events.Snapshot
	role              events.Role
	createBookingFunc func(ctx context.Context, input events.CreateBookingInput) error
	createCalls       int
}

func (m *mockStore) Snapshot() events.Snapshot { return m.snapshot }

func (m *mockStore) Role() events.Role {
	if m.role == "" {
		return events.RoleCustomer
	}
	return m.role
}

func (m *mockStore) Location() *time.Location { return time.UTC }

func (m *mockStore) SlotSize() int { return 30 }

func (m *mockStore) CreateBooking(ctx context.Context, input events.CreateBookingInput) error {
	m.createCalls++
	if m.createBookingFunc != nil {
		return m.createBookingFunc(ctx, input)
	}
	return nil
}

func fixtureSnapshot() events.Snapshot {
	return events.Snapshot{
		Windows: []domain.AvailabilityWindow{
			{
				ID:        1,
				Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
				StartTime: types.TimeString("09:00:00"),
				EndTime:   types.TimeString("12:00:00"),
			},
		},
		Services: []domain.Service{
			{ID: 1, Name: "Cut", Worktime: "00:30:00", Price: "45.00"},
			{ID: 2, Name: "Color", Worktime: "01:00:00", Price: "80.00"},
		},
		Events: []domain.CalendarEvent{
			domain.NewBookedEvent(domain.BookingRecord{
				ID:      9,
				StartAt: time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
				EndAt:   time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC),
			}),
		},
	}
}

func newTestUseCase(store *mockStore, now time.Time) *UseCase {
	uc := NewUseCase(store, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	store := &mockStore{snapshot: fixtureSnapshot()}
	var captured events.CreateBookingInput
	store.createBookingFunc = func(ctx context.Context, input events.CreateBookingInput) error {
		captured = input
		return nil
	}

	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(store, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1, 2},
		StartAt:    time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, store.createCalls)
	assert.Equal(t, []int64{1, 2}, captured.ServiceIDs)
	assert.Equal(t, time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC), resp.EndAt,
		"end must be start plus total service duration")
	assert.Equal(t, 125.0, resp.TotalPrice)
	assert.Equal(t, "1h 30min", resp.TotalDuration)
}

// Интервал бронирования считается по суммарной длительности услуг:
// полтора часа услуг с 09:00 накрывают бронирование 10:00-10:30,
// хотя первый получасовой слот свободен.
func TestExecute_ServiceDurationConflictsWithLaterBooking(t *testing.T) {
	store := &mockStore{snapshot: fixtureSnapshot()}
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(store, now)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1, 2},
		StartAt:    time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Zero(t, store.createCalls, "backend must not be called on local failure")
}

// Полтора часа услуг с 11:00 выходят за конец окна 12:00,
// хотя первый получасовой слот целиком внутри окна.
func TestExecute_ServiceDurationStraddlesEndOfWindow(t *testing.T) {
	store := &mockStore{snapshot: fixtureSnapshot()}
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(store, now)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1, 2},
		StartAt:    time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrOutsideAvailability)
	assert.Zero(t, store.createCalls, "backend must not be called on local failure")
}

func TestExecute_PreconditionFailuresDoNotReachBackend(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "no services selected",
			req:     Request{StartAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)},
			wantErr: ErrNoServicesSelected,
		},
		{
			name:    "no slot selected",
			req:     Request{ServiceIDs: []int64{1}},
			wantErr: ErrSlotNotSelected,
		},
		{
			name: "slot in the past",
			req: Request{
				ServiceIDs: []int64{1},
				StartAt:    time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC),
			},
			wantErr: ErrSlotInPast,
		},
		{
			name: "unknown service",
			req: Request{
				ServiceIDs: []int64{99},
				StartAt:    time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
			},
			wantErr: ErrServiceNotFound,
		},
		{
			name: "slot outside availability",
			req: Request{
				ServiceIDs: []int64{1},
				StartAt:    time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC),
			},
			wantErr: ErrOutsideAvailability,
		},
		{
			name: "slot straddles end of window",
			req: Request{
				ServiceIDs: []int64{1},
				StartAt:    time.Date(2024, 6, 10, 11, 45, 0, 0, time.UTC),
			},
			wantErr: ErrOutsideAvailability,
		},
		{
			name: "slot overlaps an existing booking",
			req: Request{
				ServiceIDs: []int64{1},
				StartAt:    time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
			},
			wantErr: ErrSlotTaken,
		},
		{
			name: "customer cannot book for another user",
			req: Request{
				ServiceIDs: []int64{1},
				StartAt:    time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
				ForUser:    ptr.Ptr(int64(42)),
			},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{snapshot: fixtureSnapshot()}
			uc := newTestUseCase(store, now)

			_, err := uc.Execute(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.createCalls, "backend must not be called on local failure")
		})
	}
}

func TestExecute_SlotTouchingBookingBoundaryIsAllowed(t *testing.T) {
	store := &mockStore{snapshot: fixtureSnapshot()}
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(store, now)

	// Бронирование занимает 10:00-10:30; слот 10:30-11:00 граничит, но не пересекается
	_, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		StartAt:    time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, store.createCalls)
}

func TestExecute_AdminBooksForAnotherUser(t *testing.T) {
	store := &mockStore{snapshot: fixtureSnapshot(), role: events.RoleAdmin}
	var captured events.CreateBookingInput
	store.createBookingFunc = func(ctx context.Context, input events.CreateBookingInput) error {
		captured = input
		return nil
	}

	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(store, now)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		StartAt:    time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		ForUser:    ptr.Ptr(int64(42)),
	})

	require.NoError(t, err)
	require.NotNil(t, captured.ForUser)
	assert.Equal(t, int64(42), *captured.ForUser)
}
