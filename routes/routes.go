package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"firebase.google.com/go/v4/auth"

	"serenity/handlers"
	"serenity/middleware"
	"serenity/utils"
)

// RegisterCatalogRoutes registers the public catalog reads.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/categories", hb.ListCategoriesHandler)
		api.GET("/services", hb.ListServicesHandler)
		api.GET("/services/:id", hb.GetServiceHandler)
	}
}

// RegisterUserRoutes registers the endpoints behind Firebase user auth:
// favorites, cart and the booking flow.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authClient *auth.Client) {
	authed := middleware.FirebaseAuthMiddleware(authClient)

	favoritesGroup := r.Group("/api/favorites")
	{
		favoritesGroup.Use(authed)
		favoritesGroup.GET("", hb.ListFavoritesHandler)
		favoritesGroup.POST("/:serviceId/toggle", hb.ToggleFavoriteHandler)
	}

	cartGroup := r.Group("/api/cart")
	{
		cartGroup.Use(authed)
		cartGroup.GET("", hb.GetCartHandler)
		cartGroup.POST("", hb.AddToCartHandler)
		cartGroup.DELETE("", hb.ClearCartHandler)
		cartGroup.DELETE("/:appointmentId", hb.RemoveFromCartHandler)
	}

	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.GET("/next-slot", hb.NextSlotHandler)

		bookingGroup.Use(authed)
		bookingGroup.GET("", hb.ListBookingsHandler)
		bookingGroup.GET("/stream", hb.MyBookingsStreamHandler)
		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.POST("/begin", hb.BeginBookingHandler)
		bookingGroup.POST("/confirm", hb.ConfirmBookingHandler)
	}

	r.POST("/create-payment-intent", authed, hb.CreatePaymentIntentHandler)
}

// RegisterAdminRoutes registers login plus the JWT-protected admin
// surface: catalog writes, the transactions table and its live mirrors.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.AdminLoginHandler)

		adminGroup.Use(middleware.AdminAuthMiddleware())
		adminGroup.POST("/categories", hb.CreateCategoryHandler)
		adminGroup.PUT("/categories/:id", hb.UpdateCategoryHandler)
		adminGroup.DELETE("/categories/:id", hb.DeleteCategoryHandler)
		adminGroup.POST("/services", hb.CreateServiceHandler)
		adminGroup.PUT("/services/:id", hb.UpdateServiceHandler)
		adminGroup.DELETE("/services/:id", hb.DeleteServiceHandler)

		adminGroup.GET("/transactions", hb.ListTransactionsHandler)
		adminGroup.PUT("/transactions/:id/complete", hb.CompletePaymentHandler)
		adminGroup.GET("/transactions/stream", hb.TransactionsStreamHandler)
	}
}

// RegisterStreamRoutes registers the public live collection mirrors.
func RegisterStreamRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	streamGroup := r.Group("/api/streams")
	{
		streamGroup.GET("/categories", hb.CategoriesStreamHandler)
		streamGroup.GET("/services", hb.ServicesStreamHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authClient *auth.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, hb)
	RegisterUserRoutes(r, hb, authClient)
	RegisterAdminRoutes(r, hb)
	RegisterStreamRoutes(r, hb)
	RegisterHealthRoute(r)
}
