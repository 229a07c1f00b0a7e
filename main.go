package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thetradeware/mekacash-backend/config"
	"github.com/thetradeware/mekacash-backend/cron"
	"github.com/thetradeware/mekacash-backend/database"
	bookingRepoPkg "github.com/thetradeware/mekacash-backend/database/repository/booking"
	serviceRepoPkg "github.com/thetradeware/mekacash-backend/database/repository/service"
	"github.com/thetradeware/mekacash-backend/handlers"
	"github.com/thetradeware/mekacash-backend/middleware"
	"github.com/thetradeware/mekacash-backend/routes"
	"github.com/thetradeware/mekacash-backend/services/booking"
	"github.com/thetradeware/mekacash-backend/services/notification"
	"github.com/thetradeware/mekacash-backend/services/payment"
	"github.com/thetradeware/mekacash-backend/services/rating"
	"github.com/thetradeware/mekacash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	if mongoRepo, ok := bookingRepo.(*bookingRepoPkg.MongoBookingRepo); ok {
		if err := mongoRepo.EnsureIndexes(); err != nil {
			logger.Sugar().Warnf("main: failed to ensure booking indexes: %v", err)
		}
	}

	// notification queue. Disabled means intents are dropped, not enqueued.
	var dispatcher notification.Dispatcher = notification.NopDispatcher{}
	if config.AppConfig.NotificationsEnabled {
		utils.FirebaseInit()

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisNotifQueueDB,
		})
		defer asynqClient.Close()
		dispatcher = notification.NewAsynqDispatcher(asynqClient, logger)

		deliveryService := &notification.DeliveryService{
			Repo: bookingRepo,
			Push: &notification.FCMPushSender{
				Client: utils.FCMClient,
				Tokens: utils.GetCacheClient(),
			},
			Email:  &notification.LogEmailSender{Logger: logger},
			SMS:    &notification.LogSMSSender{Logger: logger},
			Logger: logger,
		}
		cron.InitNotificationWorker(deliveryService)
	} else {
		logger.Info("notifications disabled, intents will be dropped")
	}

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:            bookingRepo,
		NotifyOnMessage: config.AppConfig.NotifyOnMessage,
	}
	ratingService := &rating.DefaultRatingService{Repo: serviceRepo}
	settlementService := payment.NewSettlementService(bookingRepo, logger)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService, ratingService, dispatcher, logger)
	paymentHandler := handlers.NewPaymentWebhookHandler(settlementService, logger)

	routes.RegisterRoutes(router, bookingHandler, paymentHandler)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

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
