package notification

import (
	"context"
	"fmt"

	bookingRepo "github.com/thetradeware/mekacash-backend/database/repository/booking"
	"github.com/thetradeware/mekacash-backend/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PushSender delivers a push notification to one recipient.
type PushSender interface {
	SendPush(ctx context.Context, recipientID, title, body string, data map[string]string) error
}

// EmailSender delivers an email notification. The SMTP wiring lives with the
// gateway; this is just the contract the delivery service needs.
type EmailSender interface {
	SendEmail(ctx context.Context, recipientID, subject, body string) error
}

// SMSSender delivers an SMS notification.
type SMSSender interface {
	SendSMS(ctx context.Context, recipientID, body string) error
}

// DeliveryService routes an intent to its channel sender and writes the
// outcome back onto the booking's notifications log. Delivery failures are
// recorded there and never touch booking state.
type DeliveryService struct {
	Repo   bookingRepo.BookingRepository
	Push   PushSender
	Email  EmailSender
	SMS    SMSSender
	Logger *zap.Logger
}

// Deliver attempts delivery of one intent and records the outcome.
func (s *DeliveryService) Deliver(ctx context.Context, intent models.NotificationIntent) error {
	var err error
	switch intent.Channel {
	case models.ChannelPush:
		err = s.Push.SendPush(ctx, intent.RecipientID, intent.Title, intent.Message, intent.Data)
	case models.ChannelEmail:
		err = s.Email.SendEmail(ctx, intent.RecipientID, intent.Title, intent.Message)
	case models.ChannelSMS:
		err = s.SMS.SendSMS(ctx, intent.RecipientID, intent.Message)
	case models.ChannelInApp:
		// In-app notifications are just the log entry itself.
	default:
		err = fmt.Errorf("unknown notification channel: %s", intent.Channel)
	}

	record := models.DeliveryRecord{
		IntentID:    intent.ID,
		RecipientID: intent.RecipientID,
		Channel:     intent.Channel,
		Title:       intent.Title,
		Delivered:   err == nil,
		AttemptedAt: intent.CreatedAt,
	}
	if err != nil {
		record.Error = err.Error()
		s.Logger.Warn("notification delivery failed",
			zap.String("intent", intent.ID),
			zap.String("booking", intent.BookingID),
			zap.String("channel", string(intent.Channel)),
			zap.Error(err))
	}

	if repoErr := s.Repo.AppendDeliveryRecord(ctx, intent.BookingID, record); repoErr != nil {
		s.Logger.Error("failed to record delivery outcome",
			zap.String("booking", intent.BookingID), zap.Error(repoErr))
	}
	return err
}

// FCMPushSender sends pushes through Firebase Cloud Messaging. Device tokens
// are maintained in the cache by the identity collaborator under fcm:<id>.
type FCMPushSender struct {
	Client *messaging.Client
	Tokens *redis.Client
}

func (s *FCMPushSender) SendPush(ctx context.Context, recipientID, title, body string, data map[string]string) error {
	token, err := s.Tokens.Get(ctx, "fcm:"+recipientID).Result()
	if err != nil || token == "" {
		return fmt.Errorf("no FCM token for recipient %s", recipientID)
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := s.Client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

// LogEmailSender is the development email sender: it logs instead of sending.
type LogEmailSender struct {
	Logger *zap.Logger
}

func (s *LogEmailSender) SendEmail(ctx context.Context, recipientID, subject, body string) error {
	s.Logger.Info("email (dev sender)",
		zap.String("recipient", recipientID),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}

// LogSMSSender is the development SMS sender: it logs instead of sending.
type LogSMSSender struct {
	Logger *zap.Logger
}

func (s *LogSMSSender) SendSMS(ctx context.Context, recipientID, body string) error {
	s.Logger.Info("sms (dev sender)",
		zap.String("recipient", recipientID),
		zap.String("body", body))
	return nil
}
