package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "serenity/database/repository/booking"
	"serenity/models"
	"serenity/utils"
)

// TransactionsHandler serves the admin transactions table: every booking
// with its paid and outstanding amounts, plus the complete-payment action.
type TransactionsHandler struct {
	repo   bookingRepo.BookingRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewTransactionsHandler constructs the handler.
func NewTransactionsHandler(repo bookingRepo.BookingRepository, logger *zap.Logger) *TransactionsHandler {
	return &TransactionsHandler{repo: repo, logger: logger, now: time.Now}
}

type transactionRow struct {
	models.Booking
	Remaining float64 `json:"remaining"`
}

// ListTransactionsHandler returns all bookings with the remaining balance
// computed per row.
func (h *TransactionsHandler) ListTransactionsHandler(c *gin.Context) {
	bookings, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err))
		c.JSON(http.StatusOK, []transactionRow{})
		return
	}

	rows := make([]transactionRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, transactionRow{Booking: b, Remaining: b.Remaining()})
	}
	c.JSON(http.StatusOK, rows)
}

// CompletePaymentHandler marks the remaining balance of a booking as
// settled. Unknown bookings are a 404; already-completed ones a 409.
func (h *TransactionsHandler) CompletePaymentHandler(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.repo.GetByID(ctx, id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}

	if err := h.repo.Complete(ctx, id, h.now().UTC()); err != nil {
		utils.JSONError(c, http.StatusConflict, "payment already completed", err.Error())
		return
	}

	record, err := h.repo.GetByID(ctx, id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}
	c.JSON(http.StatusOK, record)
}
