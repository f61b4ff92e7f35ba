package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"serenity/models"
	"serenity/services/cart"
)

// --- Mock Payment Gateway ---

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, string, error) {
	args := m.Called(ctx, amount, currency)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockGateway) IntentSucceeded(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- Mock Booking Repository ---

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking models.Booking) (string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.Error(1)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingRepo) Complete(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockBookingRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	args := m.Called(ctx)
	return args.Get(0).(<-chan struct{}), args.Error(1)
}

// --- In-memory collaborators ---

type memSessions struct {
	mu   sync.Mutex
	data map[string]Session
}

func newMemSessions() *memSessions { return &memSessions{data: map[string]Session{}} }

func (s *memSessions) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = *session
	return nil
}

func (s *memSessions) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.data[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *memSessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newMemLocker() *memLocker { return &memLocker{held: map[string]bool{}} }

func (l *memLocker) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *memLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

type memCartStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func (s *memCartStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok {
		return "", cart.ErrKeyNotFound
	}
	return val, nil
}

func (s *memCartStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// --- Test Helpers ---

var testNow = time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC)

func newTestFlow(gateway *mockGateway, repo *mockBookingRepo) (*Flow, *cart.Manager) {
	carts := cart.NewManager(&memCartStorage{data: map[string]string{}}, zap.NewNop())
	flow := NewFlow(gateway, newMemSessions(), newMemLocker(), repo, carts, nil, zap.NewNop())
	flow.now = func() time.Time { return testNow }
	return flow, carts
}

func addEntry(carts *cart.Manager, userID, appointmentID string, price float64) models.CartEntry {
	entry := models.CartEntry{
		AppointmentID:       appointmentID,
		Service:             models.Service{ID: "svc-1", Title: "Hot Stone Massage", Price: price},
		AppointmentDateTime: testNow.Add(26 * time.Hour), // next day 12:00, inside the window
	}
	carts.StoreFor(context.Background(), userID).Add(context.Background(), entry)
	return entry
}

// --- Tests ---

func TestBegin_CreatesIntentForHalfPriceInCents(t *testing.T) {
	gateway := new(mockGateway)
	repo := new(mockBookingRepo)
	flow, carts := newTestFlow(gateway, repo)
	addEntry(carts, "user-1", "appt-1", 100.00)

	// A $100.00 service books with a $50.00 deposit, sent as 5000 cents.
	gateway.On("CreateIntent", mock.Anything, int64(5000), "usd").
		Return("pi_123", "secret_123", nil)

	session, err := flow.Begin(context.Background(), "user-1", "user@spa.test", "appt-1")

	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPaymentConfirmation, session.State)
	assert.Equal(t, "pi_123", session.IntentID)
	assert.Equal(t, "secret_123", session.ClientSecret)
	gateway.AssertExpectations(t)
}

func TestBegin_UnknownEntry(t *testing.T) {
	flow, _ := newTestFlow(new(mockGateway), new(mockBookingRepo))

	_, err := flow.Begin(context.Background(), "user-1", "user@spa.test", "missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestBegin_StaleAppointmentRejected(t *testing.T) {
	gateway := new(mockGateway)
	flow, carts := newTestFlow(gateway, new(mockBookingRepo))

	stale := models.CartEntry{
		AppointmentID:       "appt-old",
		Service:             models.Service{ID: "svc-1", Price: 80},
		AppointmentDateTime: testNow.Add(-time.Hour),
	}
	carts.StoreFor(context.Background(), "user-1").Add(context.Background(), stale)

	_, err := flow.Begin(context.Background(), "user-1", "user@spa.test", "appt-old")
	require.Error(t, err)
	gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestBegin_IntentFailureCreatesNothing(t *testing.T) {
	gateway := new(mockGateway)
	repo := new(mockBookingRepo)
	flow, carts := newTestFlow(gateway, repo)
	addEntry(carts, "user-1", "appt-1", 100.00)

	gateway.On("CreateIntent", mock.Anything, int64(5000), "usd").
		Return("", "", assert.AnError)

	_, err := flow.Begin(context.Background(), "user-1", "user@spa.test", "appt-1")
	require.Error(t, err)

	// No session survives a failed intent; confirm has nothing to act on.
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfirm_Success(t *testing.T) {
	gateway := new(mockGateway)
	repo := new(mockBookingRepo)
	flow, carts := newTestFlow(gateway, repo)
	addEntry(carts, "user-1", "appt-1", 100.00)

	gateway.On("CreateIntent", mock.Anything, int64(5000), "usd").
		Return("pi_123", "secret_123", nil)
	gateway.On("IntentSucceeded", mock.Anything, "pi_123").Return(true, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b models.Booking) bool {
		return b.UserID == "user-1" &&
			b.TotalPrice == 100.00 &&
			b.PaidPrice == 50.00 &&
			b.Status == models.BookingStatusBooked &&
			b.Service.ID == "svc-1"
	})).Return("booking-1", nil)

	session, err := flow.Begin(context.Background(), "user-1", "user@spa.test", "appt-1")
	require.NoError(t, err)

	record, err := flow.Confirm(context.Background(), "user-1", session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusBooked, record.Status)
	assert.Equal(t, 50.00, record.PaidPrice)
	assert.Equal(t, testNow, record.PaymentDateTime)

	// The paid entry leaves the cart.
	assert.Empty(t, carts.StoreFor(context.Background(), "user-1").Entries())

	repo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestConfirm_PaymentFailureCreatesNoBooking(t *testing.T) {
	gateway := new(mockGateway)
	repo := new(mockBookingRepo)
	flow, carts := newTestFlow(gateway, repo)
	addEntry(carts, "user-1", "appt-1", 100.00)

	gateway.On("CreateIntent", mock.Anything, int64(5000), "usd").
		Return("pi_123", "secret_123", nil)
	gateway.On("IntentSucceeded", mock.Anything, "pi_123").Return(false, nil)

	session, err := flow.Begin(context.Background(), "user-1", "user@spa.test", "appt-1")
	require.NoError(t, err)

	_, err = flow.Confirm(context.Background(), "user-1", session.ID)
	assert.ErrorIs(t, err, ErrPaymentNotConfirmed)

	// No booking record, cart untouched, session gone — back to idle.
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Len(t, carts.StoreFor(context.Background(), "user-1").Entries(), 1)

	_, err = flow.Confirm(context.Background(), "user-1", session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfirm_DuplicateSubmissionBlocked(t *testing.T) {
	gateway := new(mockGateway)
	repo := new(mockBookingRepo)
	flow, carts := newTestFlow(gateway, repo)
	addEntry(carts, "user-1", "appt-1", 100.00)

	gateway.On("CreateIntent", mock.Anything, int64(5000), "usd").
		Return("pi_123", "secret_123", nil)
	gateway.On("IntentSucceeded", mock.Anything, "pi_123").Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return("booking-1", nil)

	session, err := flow.Begin(context.Background(), "user-1", "user@spa.test", "appt-1")
	require.NoError(t, err)

	// Simulate a second confirmation racing the first: pre-hold the lock.
	held, err := flow.locks.Acquire(context.Background(), "booking:lock:appt-1", time.Minute)
	require.NoError(t, err)
	require.True(t, held)

	_, err = flow.Confirm(context.Background(), "user-1", session.ID)
	assert.ErrorIs(t, err, ErrBookingInFlight)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfirm_WrongUserTreatedAsMissingSession(t *testing.T) {
	gateway := new(mockGateway)
	flow, carts := newTestFlow(gateway, new(mockBookingRepo))
	addEntry(carts, "user-1", "appt-1", 100.00)

	gateway.On("CreateIntent", mock.Anything, int64(5000), "usd").
		Return("pi_123", "secret_123", nil)

	session, err := flow.Begin(context.Background(), "user-1", "user@spa.test", "appt-1")
	require.NoError(t, err)

	_, err = flow.Confirm(context.Background(), "user-2", session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfirm_PersistFailureReleasesLock(t *testing.T) {
	gateway := new(mockGateway)
	repo := new(mockBookingRepo)
	flow, carts := newTestFlow(gateway, repo)
	addEntry(carts, "user-1", "appt-1", 100.00)

	gateway.On("CreateIntent", mock.Anything, int64(5000), "usd").
		Return("pi_123", "secret_123", nil)
	gateway.On("IntentSucceeded", mock.Anything, "pi_123").Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	session, err := flow.Begin(context.Background(), "user-1", "user@spa.test", "appt-1")
	require.NoError(t, err)

	_, err = flow.Confirm(context.Background(), "user-1", session.ID)
	require.Error(t, err)

	// The lock is free again, so the user can re-initiate.
	held, err := flow.locks.Acquire(context.Background(), "booking:lock:appt-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, held)
}
