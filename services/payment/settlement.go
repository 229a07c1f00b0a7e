package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepo "github.com/thetradeware/mekacash-backend/database/repository/booking"
	"github.com/thetradeware/mekacash-backend/models"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// SettlementService applies Stripe webhook events to the payment sub-record
// of the referenced booking. It owns that sub-record exclusively; the
// lifecycle reads payment status but never writes it.
type SettlementService struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}

func NewSettlementService(repo bookingRepo.BookingRepository, logger *zap.Logger) *SettlementService {
	return &SettlementService{Repo: repo, Logger: logger}
}

// HandleEvent routes one verified Stripe event. Events for unknown bookings
// or types we don't track are acknowledged and skipped.
func (s *SettlementService) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "payment_intent.succeeded":
		return s.applyPaymentIntent(ctx, event, models.PaymentStatusPaid)
	case "payment_intent.payment_failed":
		return s.applyPaymentIntent(ctx, event, models.PaymentStatusFailed)
	case "charge.refunded":
		return s.applyRefund(ctx, event)
	default:
		s.Logger.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *SettlementService) applyPaymentIntent(ctx context.Context, event stripe.Event, status models.PaymentStatus) error {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return fmt.Errorf("failed to parse payment intent event: %w", err)
	}

	bookingID := pi.Metadata["booking_id"]
	if bookingID == "" {
		s.Logger.Warn("stripe payment intent without booking metadata", zap.String("payment_intent", pi.ID))
		return nil
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	pay := b.Payment
	pay.Status = status
	pay.TransactionRef = pi.ID

	if err := s.Repo.UpdatePayment(ctx, bookingID, pay); err != nil {
		return err
	}
	s.Logger.Info("payment settled",
		zap.String("booking", bookingID),
		zap.String("status", string(status)))
	return nil
}

func (s *SettlementService) applyRefund(ctx context.Context, event stripe.Event) error {
	var ch stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
		return fmt.Errorf("failed to parse refund event: %w", err)
	}

	bookingID := ch.Metadata["booking_id"]
	if bookingID == "" {
		s.Logger.Warn("stripe refund without booking metadata", zap.String("charge", ch.ID))
		return nil
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	refunded := float64(ch.AmountRefunded) / 100
	now := time.Now()

	pay := b.Payment
	pay.RefundAmount = refunded
	pay.RefundedAt = &now
	if ch.AmountRefunded >= ch.Amount {
		pay.Status = models.PaymentStatusRefunded
	} else {
		pay.Status = models.PaymentStatusPartiallyRefunded
	}

	if err := s.Repo.UpdatePayment(ctx, bookingID, pay); err != nil {
		return err
	}
	s.Logger.Info("refund settled",
		zap.String("booking", bookingID),
		zap.Float64("amount", refunded))
	return nil
}
