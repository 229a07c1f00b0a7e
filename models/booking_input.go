package models

import "time"

// CreateBookingInput is the request payload for creating a booking. The
// requester id comes from the auth middleware, not the body.
type CreateBookingInput struct {
	ServiceID       string            `json:"service_id" binding:"required"`
	ProviderID      string            `json:"provider_id" binding:"required"`
	RunnerID        string            `json:"runner_id"`
	ScheduledAt     time.Time         `json:"scheduled_at" binding:"required"`
	DurationMinutes int               `json:"duration_minutes"`
	BasePrice       float64           `json:"base_price"`
	Surcharges      []PriceAdjustment `json:"surcharges"`
	Discounts       []PriceAdjustment `json:"discounts"`
	Tax             float64           `json:"tax"`
	Currency        string            `json:"currency" binding:"required"`
	PaymentMethod   string            `json:"payment_method"`
}

// TrackingUpdate is the request payload for a location report. Speed and
// heading are optional; basic pings send coordinates only.
type TrackingUpdate struct {
	Latitude  float64  `json:"latitude" binding:"required"`
	Longitude float64  `json:"longitude" binding:"required"`
	Address   string   `json:"address"`
	Speed     *float64 `json:"speed"`
	Heading   *float64 `json:"heading"`
}

// Snapshot computes the immutable pricing snapshot for the booking:
// base plus surcharges, minus discounts, plus tax.
func (in CreateBookingInput) Snapshot() PricingSnapshot {
	total := in.BasePrice + in.Tax
	for _, s := range in.Surcharges {
		total += s.Amount
	}
	for _, d := range in.Discounts {
		total -= d.Amount
	}
	return PricingSnapshot{
		BasePrice:  in.BasePrice,
		Surcharges: in.Surcharges,
		Discounts:  in.Discounts,
		Tax:        in.Tax,
		Total:      total,
		Currency:   in.Currency,
	}
}
