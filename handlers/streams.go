package handlers

import (
	"context"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "serenity/database/repository/booking"
	catalogRepo "serenity/database/repository/catalog"
	"serenity/middleware"
	"serenity/models"
	"serenity/services/mirror"
)

// StreamsHandler serves live collection mirrors over server-sent events.
// Each connection gets the full document set on connect and a fresh copy
// after every change in the backing collection.
type StreamsHandler struct {
	catalog  catalogRepo.CatalogRepository
	bookings bookingRepo.BookingRepository
	logger   *zap.Logger
}

// NewStreamsHandler constructs the handler.
func NewStreamsHandler(catalog catalogRepo.CatalogRepository, bookings bookingRepo.BookingRepository, logger *zap.Logger) *StreamsHandler {
	return &StreamsHandler{catalog: catalog, bookings: bookings, logger: logger}
}

// CategoriesStreamHandler mirrors the categories collection.
func (h *StreamsHandler) CategoriesStreamHandler(c *gin.Context) {
	streamMirror(c, h.logger, h.catalog.ListCategories, h.catalog.WatchCategories)
}

// ServicesStreamHandler mirrors the services collection.
func (h *StreamsHandler) ServicesStreamHandler(c *gin.Context) {
	streamMirror(c, h.logger, h.catalog.ListServices, h.catalog.WatchServices)
}

// MyBookingsStreamHandler mirrors the caller's own bookings. Any change
// in the collection re-fetches the user's filtered view.
func (h *StreamsHandler) MyBookingsStreamHandler(c *gin.Context) {
	userID := middleware.UserID(c)
	streamMirror(c, h.logger, func(ctx context.Context) ([]models.Booking, error) {
		return h.bookings.ListByUser(ctx, userID)
	}, h.bookings.Watch)
}

// TransactionsStreamHandler mirrors all bookings for the admin dashboard.
func (h *StreamsHandler) TransactionsStreamHandler(c *gin.Context) {
	streamMirror(c, h.logger, func(ctx context.Context) ([]models.Booking, error) {
		return h.bookings.ListAll(ctx)
	}, h.bookings.Watch)
}

// streamMirror bridges a collection mirror onto an SSE response. Slow
// clients only ever see the latest snapshot: a pending frame is replaced,
// never queued behind, when a newer one arrives.
func streamMirror[T any](c *gin.Context, logger *zap.Logger, fetch mirror.FetchFunc[T], watch mirror.WatchFunc) {
	latest := make(chan []T, 1)
	sub := mirror.Subscribe(c.Request.Context(), fetch, watch, func(docs []T) {
		for {
			select {
			case latest <- docs:
				return
			default:
				select {
				case <-latest:
				default:
				}
			}
		}
	}, logger)
	defer sub.Cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case docs := <-latest:
			payload, err := json.Marshal(docs)
			if err != nil {
				logger.Error("failed to encode stream frame", zap.Error(err))
				return false
			}
			c.SSEvent("snapshot", string(payload))
			return true
		}
	})
}
