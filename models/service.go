package models

import "time"

// RatingSummary is the running aggregate the service-rating collaborator
// maintains: a weighted incremental mean plus a five-bucket histogram
// (Buckets[0] counts one-star reviews, Buckets[4] five-star).
type RatingSummary struct {
	Average float64  `bson:"average" json:"average"`
	Count   int64    `bson:"count" json:"count"`
	Buckets [5]int64 `bson:"buckets" json:"buckets"`
}

// Service is the marketplace listing a booking is made against. Only the
// fields the rating fold touches are modeled here; the full catalog lives
// with the listing collaborator.
type Service struct {
	ID         string        `bson:"id" json:"id"`
	ProviderID string        `bson:"provider_id" json:"provider_id"`
	Name       string        `bson:"name" json:"name"`
	Category   string        `bson:"category" json:"category"`
	Rating     RatingSummary `bson:"rating" json:"rating"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updated_at"`
}
