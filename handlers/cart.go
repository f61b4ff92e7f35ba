package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogRepo "serenity/database/repository/catalog"
	"serenity/middleware"
	"serenity/models"
	"serenity/services/cart"
	"serenity/services/schedule"
	"serenity/utils"
)

// CartHandler exposes the per-user pending-appointment cart.
type CartHandler struct {
	carts   *cart.Manager
	catalog catalogRepo.CatalogRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewCartHandler constructs the handler.
func NewCartHandler(carts *cart.Manager, catalog catalogRepo.CatalogRepository, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, logger: logger, now: time.Now}
}

// AddToCartHandler validates the requested appointment instant, snapshots
// the service and stores the entry under a fresh appointment ID.
func (h *CartHandler) AddToCartHandler(c *gin.Context) {
	var input struct {
		ServiceID           string    `json:"serviceId" binding:"required"`
		AppointmentDateTime time.Time `json:"appointmentDateTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()

	// Normalize to UTC before the window check: the same instant is
	// re-validated in UTC at submission time, so both gates must agree.
	at := input.AppointmentDateTime.UTC()
	if err := schedule.ValidateAppointment(at, h.now()); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, schedule.ErrInstantNotFuture) {
			status = http.StatusConflict
		}
		utils.JSONError(c, status, "appointment not bookable", err.Error())
		return
	}

	service, err := h.catalog.GetServiceByID(ctx, input.ServiceID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "service not found", "")
		return
	}

	entry := models.CartEntry{
		AppointmentID:       uuid.New().String(),
		Service:             *service,
		AppointmentDateTime: at,
	}

	h.carts.StoreFor(ctx, middleware.UserID(c)).Add(ctx, entry)
	c.JSON(http.StatusCreated, entry)
}

// RemoveFromCartHandler drops the entry with the given appointment ID.
// Removing an unknown ID is a no-op, mirrored by the 204 either way.
func (h *CartHandler) RemoveFromCartHandler(c *gin.Context) {
	ctx := c.Request.Context()
	h.carts.StoreFor(ctx, middleware.UserID(c)).Remove(ctx, c.Param("appointmentId"))
	c.Status(http.StatusNoContent)
}

// ClearCartHandler empties the user's cart.
func (h *CartHandler) ClearCartHandler(c *gin.Context) {
	ctx := c.Request.Context()
	h.carts.StoreFor(ctx, middleware.UserID(c)).Clear(ctx)
	c.Status(http.StatusNoContent)
}

// GetCartHandler returns the cart entries together with the deposit the
// user would pay for each at checkout.
func (h *CartHandler) GetCartHandler(c *gin.Context) {
	entries := h.carts.StoreFor(c.Request.Context(), middleware.UserID(c)).Entries()

	var total float64
	for _, entry := range entries {
		total += entry.Service.Price
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":    entries,
		"totalPrice": total,
		"deposit":    models.Deposit(total),
	})
}
