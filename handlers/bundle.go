package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all gin handlers in one struct so that the routes
// package wires endpoints without knowing how handlers are constructed.
type HandlerBundle struct {
	// Admin auth
	AdminLoginHandler gin.HandlerFunc

	// Catalog endpoints
	CreateCategoryHandler gin.HandlerFunc
	UpdateCategoryHandler gin.HandlerFunc
	DeleteCategoryHandler gin.HandlerFunc
	ListCategoriesHandler gin.HandlerFunc
	CreateServiceHandler  gin.HandlerFunc
	UpdateServiceHandler  gin.HandlerFunc
	DeleteServiceHandler  gin.HandlerFunc
	GetServiceHandler     gin.HandlerFunc
	ListServicesHandler   gin.HandlerFunc

	// Favorites endpoints
	ToggleFavoriteHandler gin.HandlerFunc
	ListFavoritesHandler  gin.HandlerFunc

	// Cart endpoints
	AddToCartHandler      gin.HandlerFunc
	RemoveFromCartHandler gin.HandlerFunc
	ClearCartHandler      gin.HandlerFunc
	GetCartHandler        gin.HandlerFunc

	// Booking endpoints
	NextSlotHandler       gin.HandlerFunc
	BeginBookingHandler   gin.HandlerFunc
	ConfirmBookingHandler gin.HandlerFunc
	ListBookingsHandler   gin.HandlerFunc
	GetBookingHandler     gin.HandlerFunc

	// Payments
	CreatePaymentIntentHandler gin.HandlerFunc

	// Admin transactions
	ListTransactionsHandler gin.HandlerFunc
	CompletePaymentHandler  gin.HandlerFunc

	// Live mirrors
	CategoriesStreamHandler   gin.HandlerFunc
	ServicesStreamHandler     gin.HandlerFunc
	MyBookingsStreamHandler   gin.HandlerFunc
	TransactionsStreamHandler gin.HandlerFunc
}
