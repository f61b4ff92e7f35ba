package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "serenity/database/repository/booking"
	"serenity/middleware"
	"serenity/models"
	"serenity/services/booking"
	"serenity/services/schedule"
	"serenity/utils"
)

// BookingHandler drives the two-step submission flow and booking reads.
type BookingHandler struct {
	flow   *booking.Flow
	repo   bookingRepo.BookingRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(flow *booking.Flow, repo bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{flow: flow, repo: repo, logger: logger, now: time.Now}
}

// NextSlotHandler returns the next bookable appointment instant, the
// value the booking form opens on.
func (h *BookingHandler) NextSlotHandler(c *gin.Context) {
	slot := schedule.NextAvailableSlot(h.now())
	c.JSON(http.StatusOK, gin.H{
		"slot":        slot,
		"openingHour": schedule.OpeningHour,
		"closingHour": schedule.ClosingHour,
	})
}

// BeginBookingHandler re-validates the cart entry's appointment and
// creates the payment intent for the deposit. The client completes the
// payment sheet with the returned secret, then calls confirm.
func (h *BookingHandler) BeginBookingHandler(c *gin.Context) {
	var input struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.flow.Begin(c.Request.Context(), middleware.UserID(c), middleware.UserEmail(c), input.AppointmentID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrEntryNotFound):
			utils.JSONError(c, http.StatusNotFound, "cart entry not found", "")
		case errors.Is(err, schedule.ErrInstantNotFuture),
			errors.Is(err, schedule.ErrOutsideBusinessHours):
			utils.JSONError(c, http.StatusConflict, "appointment no longer bookable", err.Error())
		default:
			h.logger.Error("booking begin failed", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "failed to start payment", "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":    session.ID,
		"clientSecret": session.ClientSecret,
		"deposit":      models.Deposit(session.Entry.Service.Price),
		"state":        session.State,
	})
}

// ConfirmBookingHandler verifies the payment with the processor and, on
// success, records the booking and drops the cart entry.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, err := h.flow.Confirm(c.Request.Context(), middleware.UserID(c), input.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking session not found", "")
		case errors.Is(err, booking.ErrPaymentNotConfirmed):
			utils.JSONError(c, http.StatusPaymentRequired, "payment not confirmed", "")
		case errors.Is(err, booking.ErrBookingInFlight):
			utils.JSONError(c, http.StatusConflict, "booking already in progress", "")
		default:
			h.logger.Error("booking confirm failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to record booking", "")
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListBookingsHandler returns the caller's bookings, newest appointment
// first.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	bookings, err := h.repo.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.Error("failed to list bookings", zap.Error(err))
		c.JSON(http.StatusOK, []models.Booking{})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingHandler returns one booking, only to its owner.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	record, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || record.UserID != middleware.UserID(c) {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}
	c.JSON(http.StatusOK, record)
}
