package routes

import (
	"time"

	"github.com/thetradeware/mekacash-backend/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every route group onto the engine.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, paymentHandler *handlers.PaymentWebhookHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	// Stripe calls this; it authenticates itself with the webhook signature,
	// no bearer token.
	r.POST("/api/payments/webhook", paymentHandler.HandleWebhook)

	RegisterBookingRoutes(r, bookingHandler)
}
