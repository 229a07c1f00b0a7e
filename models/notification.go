package models

import "time"

// NotificationChannel selects the delivery mechanism for an intent.
type NotificationChannel string

const (
	ChannelSMS   NotificationChannel = "sms"
	ChannelEmail NotificationChannel = "email"
	ChannelPush  NotificationChannel = "push"
	ChannelInApp NotificationChannel = "in-app"
)

// NotificationIntent describes a notification the lifecycle wants sent,
// without sending it. Delivery is the dispatch collaborator's job; a failed
// delivery never rolls back the state change that produced the intent.
type NotificationIntent struct {
	ID          string              `json:"id"`
	RecipientID string              `json:"recipient_id"`
	Channel     NotificationChannel `json:"channel"`
	Title       string              `json:"title"`
	Message     string              `json:"message"`
	BookingID   string              `json:"booking_id"`
	Data        map[string]string   `json:"data,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// DeliveryRecord is the outcome the dispatch collaborator writes back onto
// the booking's notifications log after attempting delivery.
type DeliveryRecord struct {
	IntentID    string              `bson:"intent_id" json:"intent_id"`
	RecipientID string              `bson:"recipient_id" json:"recipient_id"`
	Channel     NotificationChannel `bson:"channel" json:"channel"`
	Title       string              `bson:"title" json:"title"`
	Delivered   bool                `bson:"delivered" json:"delivered"`
	Error       string              `bson:"error,omitempty" json:"error,omitempty"`
	AttemptedAt time.Time           `bson:"attempted_at" json:"attempted_at"`
}
