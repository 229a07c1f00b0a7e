package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "github.com/thetradeware/mekacash-backend/database/repository/booking"
	"github.com/thetradeware/mekacash-backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeBookingRepo is an in-memory BookingRepository. Documents are stored as
// bson round-trips so tests also exercise persistence fidelity, and Update
// enforces the same version check as the Mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo(seed ...*models.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range seed {
		repo.bookings[b.ID] = cloneBooking(b)
	}
	return repo
}

func cloneBooking(b *models.Booking) *models.Booking {
	raw, err := bson.Marshal(b)
	if err != nil {
		panic(err)
	}
	var out models.Booking
	if err := bson.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if stored.Version != b.Version {
		return bookingRepo.ErrConflict
	}
	next := cloneBooking(b)
	next.Version = b.Version + 1
	r.bookings[b.ID] = next
	b.Version = next.Version
	return nil
}

func (r *fakeBookingRepo) ListByRequester(_ context.Context, requesterID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.RequesterID == requesterID {
			out = append(out, *cloneBooking(b))
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *cloneBooking(b))
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdatePayment(_ context.Context, bookingID string, payment models.PaymentInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Payment = payment
	return nil
}

func (r *fakeBookingRepo) AppendDeliveryRecord(_ context.Context, bookingID string, record models.DeliveryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Notifications = append(b.Notifications, record)
	return nil
}

// baseTime is the fixed "now" tests start from. Whole seconds in UTC so bson
// round-trips (millisecond precision) preserve it exactly.
var baseTime = time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

// seedBooking builds a pending booking with one history entry, ready to seed
// the fake repo.
func seedBooking(id string) *models.Booking {
	return &models.Booking{
		ID:          id,
		ServiceID:   "svc-1",
		RequesterID: "user-1",
		ProviderID:  "provider-1",
		ScheduledAt: baseTime.Add(24 * time.Hour),
		Pricing: models.PricingSnapshot{
			BasePrice: 90,
			Tax:       10,
			Total:     100,
			Currency:  "USD",
		},
		Payment: models.PaymentInfo{
			Method: "card",
			Status: models.PaymentStatusPending,
		},
		Status: models.BookingStatusPending,
		History: []models.StatusChange{{
			Status:    models.BookingStatusPending,
			Timestamp: baseTime,
			Actor:     "user-1",
			Note:      "booking created",
		}},
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

// newTestService returns a service over the given repo with a clock that
// advances one second per call, starting after baseTime.
func newTestService(repo *fakeBookingRepo) *DefaultBookingService {
	svc := &DefaultBookingService{Repo: repo}
	var mu sync.Mutex
	tick := 0
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return baseTime.Add(time.Duration(tick) * time.Second)
	}
	return svc
}
