package handlers

import (
	"io"
	"net/http"

	"github.com/thetradeware/mekacash-backend/config"
	"github.com/thetradeware/mekacash-backend/services/payment"
	"github.com/thetradeware/mekacash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// PaymentWebhookHandler receives Stripe settlement callbacks.
type PaymentWebhookHandler struct {
	Settlement *payment.SettlementService
	Logger     *zap.Logger
}

func NewPaymentWebhookHandler(settlement *payment.SettlementService, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{Settlement: settlement, Logger: logger}
}

// HandleWebhook handles POST /payments/webhook. The signature check rejects
// anything Stripe didn't sign; verified events go to the settlement service.
func (h *PaymentWebhookHandler) HandleWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read webhook body", err.Error())
		return
	}

	event, err := webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		h.Logger.Warn("stripe webhook signature verification failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	if err := h.Settlement.HandleEvent(c.Request.Context(), event); err != nil {
		h.Logger.Error("failed to apply stripe event",
			zap.String("type", string(event.Type)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
