package handlers

import (
	"net/http"

	"github.com/thetradeware/mekacash-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddReview handles POST /bookings/:id/review. After the review lands on the
// booking, the rating is folded into the service aggregate; a failed fold is
// logged but does not undo the review.
func (h *BookingHandler) AddReview(c *gin.Context) {
	var input struct {
		Rating   float64 `json:"rating" binding:"required"`
		Comment  string  `json:"comment"`
		IsPublic *bool   `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	b, err := h.Svc.AddReview(c.Request.Context(), c.Param("id"), input.Rating, input.Comment, isPublic)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if err := h.Rating.ApplyReview(c.Request.Context(), b.ServiceID, input.Rating); err != nil {
		h.Logger.Warn("failed to fold review into service rating",
			zap.String("booking", b.ID),
			zap.String("service", b.ServiceID),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"review": b.Review})
}
