package routes

import (
	"github.com/thetradeware/mekacash-backend/config"
	"github.com/thetradeware/mekacash-backend/handlers"
	"github.com/thetradeware/mekacash-backend/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("", h.CreateBooking)
		api.GET("", h.ListMyBookings)
		api.GET("/:id", h.GetBooking)

		api.POST("/:id/status", h.TransitionBooking)
		api.POST("/:id/cancel", h.CancelBooking)
		api.POST("/:id/dispute", h.RaiseDispute)
		api.POST("/:id/dispute/resolve", h.ResolveDispute)

		api.POST("/:id/messages", h.AddMessage)
		api.POST("/:id/review", h.AddReview)
		api.POST("/:id/tracking",
			middleware.TrackingThrottleMiddleware(config.AppConfig.TrackingUpdatesPerMin),
			h.RecordLocation)
	}

	providers := r.Group("/api/providers")
	providers.Use(middleware.AuthMiddleware())
	{
		providers.GET("/:id/bookings", h.ListProviderBookings)
	}
}
