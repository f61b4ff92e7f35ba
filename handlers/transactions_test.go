package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"serenity/models"
)

// fakeBookingRepo keeps bookings in a map; Complete mirrors the Mongo
// repo's booked-only guard.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newFakeBookingRepo(seed ...models.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{bookings: map[string]models.Booking{}}
	for _, b := range seed {
		f.bookings[b.ID] = b
	}
	return f
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking models.Booking) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[booking.ID] = booking
	return booking.ID, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	return &b, nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Complete(ctx context.Context, id string, fullPaymentDate time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != models.BookingStatusBooked {
		return fmt.Errorf("booking not found or already completed")
	}
	b.Status = models.BookingStatusCompleted
	b.FullPaymentDate = &fullPaymentDate
	f.bookings[id] = b
	return nil
}

func (f *fakeBookingRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return nil, fmt.Errorf("not implemented")
}

func newTransactionsTestRouter(t *testing.T, repo *fakeBookingRepo, now time.Time) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewTransactionsHandler(repo, zap.NewNop())
	h.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/transactions", h.ListTransactionsHandler)
	r.PUT("/transactions/:id/complete", h.CompletePaymentHandler)
	return r
}

func TestCompletePaymentSettlesBalance(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo(models.Booking{
		ID: "bk-1", UserID: "user-1", TotalPrice: 90, PaidPrice: 45,
		Status: models.BookingStatusBooked,
	})
	r := newTransactionsTestRouter(t, repo, now)

	w := doJSON(t, r, http.MethodPut, "/transactions/bk-1/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.BookingStatusCompleted, got.Status)
	require.NotNil(t, got.FullPaymentDate)
	assert.True(t, got.FullPaymentDate.Equal(now))
}

func TestCompletePaymentUnknownBookingIs404(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	r := newTransactionsTestRouter(t, newFakeBookingRepo(), now)

	w := doJSON(t, r, http.MethodPut, "/transactions/bk-missing/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompletePaymentTwiceIs409(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo(models.Booking{
		ID: "bk-1", UserID: "user-1", TotalPrice: 90, PaidPrice: 45,
		Status: models.BookingStatusBooked,
	})
	r := newTransactionsTestRouter(t, repo, now)

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPut, "/transactions/bk-1/complete", nil).Code)
	assert.Equal(t, http.StatusConflict, doJSON(t, r, http.MethodPut, "/transactions/bk-1/complete", nil).Code)
}

func TestListTransactionsComputesRemaining(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo(models.Booking{
		ID: "bk-1", UserID: "user-1", TotalPrice: 90, PaidPrice: 45,
		Status: models.BookingStatusBooked,
	})
	r := newTransactionsTestRouter(t, repo, now)

	w := doJSON(t, r, http.MethodGet, "/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		ID        string  `json:"id"`
		Remaining float64 `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 45.0, rows[0].Remaining)
}
