package models

import "time"

// BookingStatus is the canonical lifecycle status of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusAssigned   BookingStatus = "assigned"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusFailed     BookingStatus = "failed"
	BookingStatusDisputed   BookingStatus = "disputed"
)

var knownStatuses = map[BookingStatus]bool{
	BookingStatusPending:    true,
	BookingStatusConfirmed:  true,
	BookingStatusAssigned:   true,
	BookingStatusInProgress: true,
	BookingStatusCompleted:  true,
	BookingStatusCancelled:  true,
	BookingStatusFailed:     true,
	BookingStatusDisputed:   true,
}

// IsValid reports whether s is one of the recognized booking statuses.
func (s BookingStatus) IsValid() bool {
	return knownStatuses[s]
}

// PaymentStatus mirrors the settlement collaborator's view of the payment.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially-refunded"
)

// RefundStatus tracks the refund portion of a cancellation.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusCompleted RefundStatus = "completed"
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// StatusChange is one entry in a booking's append-only status history.
type StatusChange struct {
	Status    BookingStatus `bson:"status" json:"status"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
	Actor     string        `bson:"actor" json:"actor"`
	Note      string        `bson:"note,omitempty" json:"note,omitempty"`
}

// PriceAdjustment is a named surcharge or discount line.
type PriceAdjustment struct {
	Label  string  `bson:"label" json:"label"`
	Amount float64 `bson:"amount" json:"amount"`
}

// PricingSnapshot is captured at creation time and never re-priced.
type PricingSnapshot struct {
	BasePrice  float64           `bson:"base_price" json:"base_price"`
	Surcharges []PriceAdjustment `bson:"surcharges,omitempty" json:"surcharges,omitempty"`
	Discounts  []PriceAdjustment `bson:"discounts,omitempty" json:"discounts,omitempty"`
	Tax        float64           `bson:"tax" json:"tax"`
	Total      float64           `bson:"total" json:"total"`
	Currency   string            `bson:"currency" json:"currency"`
}

// PaymentInfo is owned by the payment settlement collaborator; lifecycle
// transitions never write it directly.
type PaymentInfo struct {
	Method         string        `bson:"method" json:"method"`
	Status         PaymentStatus `bson:"status" json:"status"`
	TransactionRef string        `bson:"transaction_ref,omitempty" json:"transaction_ref,omitempty"`
	RefundAmount   float64       `bson:"refund_amount,omitempty" json:"refund_amount,omitempty"`
	RefundedAt     *time.Time    `bson:"refunded_at,omitempty" json:"refunded_at,omitempty"`
}

// Cancellation is set at most once; only its refund status may change after.
type Cancellation struct {
	IsCancelled  bool         `bson:"is_cancelled" json:"is_cancelled"`
	CancelledBy  string       `bson:"cancelled_by" json:"cancelled_by"`
	CancelledAt  time.Time    `bson:"cancelled_at" json:"cancelled_at"`
	Reason       string       `bson:"reason" json:"reason"`
	RefundAmount float64      `bson:"refund_amount" json:"refund_amount"`
	RefundStatus RefundStatus `bson:"refund_status" json:"refund_status"`
}

// Dispute has its own resolved/unresolved lifecycle, independent of the main
// status. A completed booking can carry an open dispute.
type Dispute struct {
	RaisedBy   string     `bson:"raised_by" json:"raised_by"`
	Reason     string     `bson:"reason" json:"reason"`
	RaisedAt   time.Time  `bson:"raised_at" json:"raised_at"`
	Resolved   bool       `bson:"resolved" json:"resolved"`
	Resolution string     `bson:"resolution,omitempty" json:"resolution,omitempty"`
	ResolvedAt *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}

// Review is the single, overwritable review for a booking. A second submission
// replaces the first; no history of prior reviews is kept.
type Review struct {
	Rating      float64   `bson:"rating" json:"rating"`
	Comment     string    `bson:"comment,omitempty" json:"comment,omitempty"`
	IsPublic    bool      `bson:"is_public" json:"is_public"`
	SubmittedAt time.Time `bson:"submitted_at" json:"submitted_at"`
}

// Message is one entry in the per-booking message thread.
type Message struct {
	Sender string    `bson:"sender" json:"sender"`
	Text   string    `bson:"text" json:"text"`
	SentAt time.Time `bson:"sent_at" json:"sent_at"`
	IsRead bool      `bson:"is_read" json:"is_read"`
}

// LocationSnapshot is the latest reported position for a booking.
type LocationSnapshot struct {
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
	Address     string      `bson:"address,omitempty" json:"address,omitempty"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updated_at"`
}

// RoutePoint is one entry in the append-only route log. Speed and heading are
// optional; plain location pings leave them unset.
type RoutePoint struct {
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
	Timestamp   time.Time   `bson:"timestamp" json:"timestamp"`
	Speed       *float64    `bson:"speed,omitempty" json:"speed,omitempty"`
	Heading     *float64    `bson:"heading,omitempty" json:"heading,omitempty"`
}

// Tracking holds the current location plus the route log.
type Tracking struct {
	CurrentLocation *LocationSnapshot `bson:"current_location,omitempty" json:"current_location,omitempty"`
	Route           []RoutePoint      `bson:"route,omitempty" json:"route,omitempty"`
}

// Booking is the aggregate root for one scheduled service engagement.
// Participants are referenced by id; their accounts live with the identity
// collaborator. Version backs the repository's optimistic concurrency check.
type Booking struct {
	ID          string `bson:"id" json:"id"`
	ServiceID   string `bson:"service_id" json:"service_id"`
	RequesterID string `bson:"requester_id" json:"requester_id"`
	ProviderID  string `bson:"provider_id" json:"provider_id"`
	RunnerID    string `bson:"runner_id,omitempty" json:"runner_id,omitempty"`

	ScheduledAt     time.Time  `bson:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int        `bson:"duration_minutes" json:"duration_minutes"`
	ActualStart     *time.Time `bson:"actual_start,omitempty" json:"actual_start,omitempty"`
	ActualEnd       *time.Time `bson:"actual_end,omitempty" json:"actual_end,omitempty"`

	Pricing PricingSnapshot `bson:"pricing" json:"pricing"`
	Payment PaymentInfo     `bson:"payment" json:"payment"`

	Status  BookingStatus  `bson:"status" json:"status"`
	History []StatusChange `bson:"history" json:"history"`

	Cancellation *Cancellation `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	Dispute      *Dispute      `bson:"dispute,omitempty" json:"dispute,omitempty"`
	Review       *Review       `bson:"review,omitempty" json:"review,omitempty"`

	Messages []Message `bson:"messages,omitempty" json:"messages,omitempty"`
	Tracking Tracking  `bson:"tracking" json:"tracking"`

	Notifications []DeliveryRecord `bson:"notifications,omitempty" json:"notifications,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	Version   int64     `bson:"version" json:"-"`
}

// Participants returns the distinct non-empty participant ids, requester
// first, runner last when assigned.
func (b *Booking) Participants() []string {
	out := make([]string, 0, 3)
	seen := map[string]bool{}
	for _, id := range []string{b.RequesterID, b.ProviderID, b.RunnerID} {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
