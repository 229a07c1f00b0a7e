package handlers

import (
	"net/http"

	"github.com/thetradeware/mekacash-backend/models"
	"github.com/thetradeware/mekacash-backend/utils"

	"github.com/gin-gonic/gin"
)

// RecordLocation handles POST /bookings/:id/tracking.
func (h *BookingHandler) RecordLocation(c *gin.Context) {
	var update models.TrackingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.RecordLocation(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": b.Tracking})
}
