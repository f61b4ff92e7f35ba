package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "serenity/database/repository/booking"
	"serenity/models"
	"serenity/services/cart"
	"serenity/services/schedule"
)

// Currency all intents are created in, matching the catalog's prices.
const Currency = "usd"

// confirmLockTTL bounds how long a duplicate confirmation stays blocked
// if a crash prevents the lock from being released.
const confirmLockTTL = time.Minute

// Flow orchestrates a booking submission: payment-intent creation,
// verification of the payment confirmation, and only then the durable
// booking record. Every failure path returns the submission to idle; the
// user re-initiates, nothing retries automatically.
type Flow struct {
	gateway   PaymentGateway
	sessions  SessionStore
	locks     Locker
	repo      bookingRepo.BookingRepository
	carts     *cart.Manager
	reminders ReminderScheduler
	logger    *zap.Logger
	now       func() time.Time
}

// NewFlow wires the submission flow. reminders may be nil.
func NewFlow(
	gateway PaymentGateway,
	sessions SessionStore,
	locks Locker,
	repo bookingRepo.BookingRepository,
	carts *cart.Manager,
	reminders ReminderScheduler,
	logger *zap.Logger,
) *Flow {
	return &Flow{
		gateway:   gateway,
		sessions:  sessions,
		locks:     locks,
		repo:      repo,
		carts:     carts,
		reminders: reminders,
		logger:    logger,
		now:       time.Now,
	}
}

// Begin starts a submission for a cart entry the user confirmed. The
// appointment is re-validated against a fresh clock, the deposit (half
// the listed price) is registered with the payment processor, and the
// resulting session awaits payment confirmation. On any failure no
// session survives and no partial booking exists.
func (f *Flow) Begin(ctx context.Context, userID, userEmail, appointmentID string) (*Session, error) {
	store := f.carts.StoreFor(ctx, userID)
	entry, ok := store.Get(appointmentID)
	if !ok {
		return nil, ErrEntryNotFound
	}

	now := f.now()
	if err := schedule.ValidateAppointment(entry.AppointmentDateTime, now); err != nil {
		return nil, err
	}

	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		UserEmail: userEmail,
		State:     StateAwaitingIntent,
		Entry:     entry,
		CreatedAt: now,
	}

	deposit := models.Deposit(entry.Service.Price)
	amount := models.MinorUnits(deposit)

	intentID, clientSecret, err := f.gateway.CreateIntent(ctx, amount, Currency)
	if err != nil {
		f.logger.Error("payment intent creation failed",
			zap.String("user", userID), zap.Int64("amount", amount), zap.Error(err))
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	session.IntentID = intentID
	session.ClientSecret = clientSecret
	session.State = StateAwaitingPaymentConfirmation

	if err := f.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save booking session: %w", err)
	}

	f.logger.Info("booking session awaiting payment",
		zap.String("session", session.ID),
		zap.String("appointment", appointmentID),
		zap.Int64("amount", amount))
	return session, nil
}

// Confirm completes a submission after the client reports payment
// success. The confirmation is verified with the processor; only a
// confirmed payment ever produces a booking record. On success the cart
// entry is removed and a reminder is queued best-effort.
func (f *Flow) Confirm(ctx context.Context, userID, sessionID string) (*models.Booking, error) {
	session, err := f.sessions.Get(ctx, sessionID)
	if err != nil || session.UserID != userID {
		return nil, ErrSessionNotFound
	}

	confirmed, err := f.gateway.IntentSucceeded(ctx, session.IntentID)
	if err != nil {
		return nil, fmt.Errorf("verify payment intent: %w", err)
	}
	if !confirmed {
		// Declined or cancelled: abort to idle, the user must start over.
		if err := f.sessions.Delete(ctx, sessionID); err != nil {
			f.logger.Warn("failed to drop declined session", zap.String("session", sessionID), zap.Error(err))
		}
		f.logger.Info("payment not confirmed, no booking created",
			zap.String("session", sessionID), zap.String("intent", session.IntentID))
		return nil, ErrPaymentNotConfirmed
	}

	lockKey := "booking:lock:" + session.Entry.AppointmentID
	acquired, err := f.locks.Acquire(ctx, lockKey, confirmLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire booking lock: %w", err)
	}
	if !acquired {
		return nil, ErrBookingInFlight
	}

	now := f.now()
	record := models.Booking{
		ID:                  uuid.New().String(),
		UserID:              session.UserID,
		UserEmail:           session.UserEmail,
		Service:             session.Entry.Service,
		AppointmentDateTime: session.Entry.AppointmentDateTime,
		PaymentDateTime:     now,
		TotalPrice:          session.Entry.Service.Price,
		PaidPrice:           models.Deposit(session.Entry.Service.Price),
		Status:              models.BookingStatusBooked,
	}

	if _, err := f.repo.Create(ctx, record); err != nil {
		if relErr := f.locks.Release(ctx, lockKey); relErr != nil {
			f.logger.Warn("failed to release booking lock", zap.String("key", lockKey), zap.Error(relErr))
		}
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	f.carts.StoreFor(ctx, userID).Remove(ctx, session.Entry.AppointmentID)
	if err := f.sessions.Delete(ctx, sessionID); err != nil {
		f.logger.Warn("failed to drop completed session", zap.String("session", sessionID), zap.Error(err))
	}

	if f.reminders != nil {
		if err := f.reminders.Schedule(ctx, record); err != nil {
			f.logger.Warn("failed to queue appointment reminder",
				zap.String("booking", record.ID), zap.Error(err))
		}
	}

	f.logger.Info("booking confirmed",
		zap.String("booking", record.ID),
		zap.String("user", userID),
		zap.Float64("paid", record.PaidPrice))
	return &record, nil
}
