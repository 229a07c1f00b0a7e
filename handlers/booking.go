package handlers

import (
	"errors"
	"net/http"

	bookingRepo "github.com/thetradeware/mekacash-backend/database/repository/booking"
	"github.com/thetradeware/mekacash-backend/models"
	"github.com/thetradeware/mekacash-backend/services/booking"
	"github.com/thetradeware/mekacash-backend/services/notification"
	"github.com/thetradeware/mekacash-backend/services/rating"
	"github.com/thetradeware/mekacash-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP. Every mutating
// handler persists first, then hands the returned intents to the dispatcher;
// dispatch failure can no longer affect the response.
type BookingHandler struct {
	Svc        booking.BookingService
	Rating     rating.RatingService
	Dispatcher notification.Dispatcher
	Logger     *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, ratingSvc rating.RatingService, dispatcher notification.Dispatcher, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Rating: ratingSvc, Dispatcher: dispatcher, Logger: logger}
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookingRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", err.Error())
	case errors.Is(err, bookingRepo.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "Booking was modified concurrently, retry", err.Error())
	case errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, booking.ErrInvalidRating),
		errors.Is(err, booking.ErrMissingActor),
		errors.Is(err, booking.ErrNoDispute):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	requesterID := c.GetString("actorID")
	b, intents, err := h.Svc.Create(c.Request.Context(), requesterID, input)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	h.Dispatcher.Dispatch(c.Request.Context(), intents)
	c.JSON(http.StatusCreated, b)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookings handles GET /bookings, scoped to the authenticated requester.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.Svc.ListByRequester(c.Request.Context(), c.GetString("actorID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListProviderBookings handles GET /providers/:id/bookings.
func (h *BookingHandler) ListProviderBookings(c *gin.Context) {
	bookings, err := h.Svc.ListByProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// TransitionBooking handles POST /bookings/:id/status.
func (h *BookingHandler) TransitionBooking(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := c.GetString("actorID")
	b, intents, err := h.Svc.Transition(c.Request.Context(), c.Param("id"), models.BookingStatus(input.Status), actor, input.Note)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	h.Dispatcher.Dispatch(c.Request.Context(), intents)
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles POST /bookings/:id/cancel. A missing refund_amount
// asks for the payment-aware default.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input struct {
		Reason       string   `json:"reason" binding:"required"`
		RefundAmount *float64 `json:"refund_amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	refund := -1.0
	if input.RefundAmount != nil {
		refund = *input.RefundAmount
	}

	actor := c.GetString("actorID")
	b, intents, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), actor, input.Reason, refund)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	h.Dispatcher.Dispatch(c.Request.Context(), intents)
	c.JSON(http.StatusOK, b)
}

// RaiseDispute handles POST /bookings/:id/dispute.
func (h *BookingHandler) RaiseDispute(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := c.GetString("actorID")
	b, intents, err := h.Svc.RaiseDispute(c.Request.Context(), c.Param("id"), actor, input.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	h.Dispatcher.Dispatch(c.Request.Context(), intents)
	c.JSON(http.StatusOK, b)
}

// ResolveDispute handles POST /bookings/:id/dispute/resolve.
func (h *BookingHandler) ResolveDispute(c *gin.Context) {
	var input struct {
		Resolution string `json:"resolution" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := c.GetString("actorID")
	b, err := h.Svc.ResolveDispute(c.Request.Context(), c.Param("id"), actor, input.Resolution)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
