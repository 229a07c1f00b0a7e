package handlers

import (
	"net/http"

	"github.com/thetradeware/mekacash-backend/utils"

	"github.com/gin-gonic/gin"
)

// AddMessage handles POST /bookings/:id/messages.
func (h *BookingHandler) AddMessage(c *gin.Context) {
	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sender := c.GetString("actorID")
	b, intents, err := h.Svc.AddMessage(c.Request.Context(), c.Param("id"), sender, input.Text)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	h.Dispatcher.Dispatch(c.Request.Context(), intents)
	c.JSON(http.StatusOK, gin.H{"messages": b.Messages})
}
