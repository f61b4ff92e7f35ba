package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serenity/config"
	"serenity/cron"
	"serenity/database"
	adminRepoPkg "serenity/database/repository/admin"
	bookingRepoPkg "serenity/database/repository/booking"
	catalogRepoPkg "serenity/database/repository/catalog"
	"serenity/handlers"
	"serenity/middleware"
	"serenity/routes"
	"serenity/services/booking"
	"serenity/services/cart"
	"serenity/services/favorites"
	"serenity/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitCartCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	adminRepo := adminRepoPkg.NewMongoAdminRepo()

	// Services.
	favoritesStore := favorites.NewStore()
	cartManager := cart.NewManager(cart.NewRedisStorage(utils.GetCartCacheClient()), logger)
	reminderScheduler := cron.NewReminderScheduler()
	bookingFlow := booking.NewFlow(
		booking.StripeGateway{},
		booking.NewRedisSessionStore(utils.GetCacheClient()),
		booking.NewRedisLocker(utils.GetCacheClient()),
		bookingRepo,
		cartManager,
		reminderScheduler,
		logger,
	)

	// Handlers.
	adminAuthHandler := handlers.NewAdminAuthHandler(adminRepo, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, logger)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesStore, catalogRepo)
	cartHandler := handlers.NewCartHandler(cartManager, catalogRepo, logger)
	bookingHandler := handlers.NewBookingHandler(bookingFlow, bookingRepo, logger)
	paymentHandler := handlers.NewPaymentHandler(&config.AppConfig, logger)
	transactionsHandler := handlers.NewTransactionsHandler(bookingRepo, logger)
	streamsHandler := handlers.NewStreamsHandler(catalogRepo, bookingRepo, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AdminLoginHandler: adminAuthHandler.LoginHandler,

		CreateCategoryHandler: catalogHandler.CreateCategoryHandler,
		UpdateCategoryHandler: catalogHandler.UpdateCategoryHandler,
		DeleteCategoryHandler: catalogHandler.DeleteCategoryHandler,
		ListCategoriesHandler: catalogHandler.ListCategoriesHandler,
		CreateServiceHandler:  catalogHandler.CreateServiceHandler,
		UpdateServiceHandler:  catalogHandler.UpdateServiceHandler,
		DeleteServiceHandler:  catalogHandler.DeleteServiceHandler,
		GetServiceHandler:     catalogHandler.GetServiceHandler,
		ListServicesHandler:   catalogHandler.ListServicesHandler,

		ToggleFavoriteHandler: favoritesHandler.ToggleFavoriteHandler,
		ListFavoritesHandler:  favoritesHandler.ListFavoritesHandler,

		AddToCartHandler:      cartHandler.AddToCartHandler,
		RemoveFromCartHandler: cartHandler.RemoveFromCartHandler,
		ClearCartHandler:      cartHandler.ClearCartHandler,
		GetCartHandler:        cartHandler.GetCartHandler,

		NextSlotHandler:       bookingHandler.NextSlotHandler,
		BeginBookingHandler:   bookingHandler.BeginBookingHandler,
		ConfirmBookingHandler: bookingHandler.ConfirmBookingHandler,
		ListBookingsHandler:   bookingHandler.ListBookingsHandler,
		GetBookingHandler:     bookingHandler.GetBookingHandler,

		CreatePaymentIntentHandler: paymentHandler.CreatePaymentIntentHandler,

		ListTransactionsHandler: transactionsHandler.ListTransactionsHandler,
		CompletePaymentHandler:  transactionsHandler.CompletePaymentHandler,

		CategoriesStreamHandler:   streamsHandler.CategoriesStreamHandler,
		ServicesStreamHandler:     streamsHandler.ServicesStreamHandler,
		MyBookingsStreamHandler:   streamsHandler.MyBookingsStreamHandler,
		TransactionsStreamHandler: streamsHandler.TransactionsStreamHandler,
	}

	routes.RegisterRoutes(router, handlerBundle, utils.AuthClient)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetCartCacheClient()},
		database.MongoClient,
	)
	cron.InitReminderWorker(utils.FCMClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
