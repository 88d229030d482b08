package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "bookmyspot/database/repository/booking"
	spotRepo "bookmyspot/database/repository/spot"
	"bookmyspot/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeSpotRepo is an in-memory SpotRepository.
type fakeSpotRepo struct {
	mu    sync.Mutex
	spots map[string]models.ParkingSpot
}

func newFakeSpotRepo(spots ...models.ParkingSpot) *fakeSpotRepo {
	r := &fakeSpotRepo{spots: make(map[string]models.ParkingSpot)}
	for _, s := range spots {
		r.spots[s.ID] = s
	}
	return r
}

func (r *fakeSpotRepo) GetByID(id string) (*models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spots[id]
	if !ok {
		return nil, spotRepo.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSpotRepo) QueryByOwner(ownerID string) ([]models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ParkingSpot
	for _, s := range r.spots {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSpotRepo) QueryApproved(city string) ([]models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ParkingSpot
	for _, s := range r.spots {
		if s.Status == models.SpotApproved && (city == "" || s.City == city) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSpotRepo) Create(spot *models.ParkingSpot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spots[spot.ID] = *spot
	return nil
}

func (r *fakeSpotRepo) UpdateFields(id string, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spots[id]
	if !ok {
		return spotRepo.ErrNotFound
	}
	if v, ok := fields["availability"]; ok {
		s.Availability = v.(models.Availability)
	}
	r.spots[id] = s
	return nil
}

func (r *fakeSpotRepo) SetAvailability(id string, availability models.Availability) error {
	return r.UpdateFields(id, bson.M{"availability": availability})
}

func (r *fakeSpotRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.spots[id]; !ok {
		return spotRepo.ErrNotFound
	}
	delete(r.spots, id)
	return nil
}

// fakeBookingRepo is an in-memory BookingRepository whose ReserveIfFree
// applies the same overlap re-check as the mongo transaction.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newFakeBookingRepo(bookings ...models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]models.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBookingRepo) QueryBySpot(spotID string, statusIn []models.BookingStatus, startAfter *time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.SpotID != spotID {
			continue
		}
		if len(statusIn) > 0 && !statusIn2set(statusIn)[b.Status] {
			continue
		}
		if startAfter != nil && b.Start.Before(*startAfter) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func statusIn2set(in []models.BookingStatus) map[models.BookingStatus]bool {
	m := make(map[models.BookingStatus]bool, len(in))
	for _, s := range in {
		m[s] = true
	}
	return m
}

func (r *fakeBookingRepo) QueryByUser(userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ReserveIfFree(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	blocking := statusIn2set(models.BlockingStatuses())
	for _, b := range r.bookings {
		if b.SpotID == booking.SpotID && blocking[b.Status] && b.Overlaps(booking.Start, booking.End) {
			return bookingRepo.ErrSlotConflict
		}
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Status = status
	r.bookings[id] = b
	return nil
}

func (r *fakeBookingRepo) UpdatePayment(id string, status models.PaymentStatus, invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.PaymentStatus = status
	b.Invoice = invoice
	r.bookings[id] = b
	return nil
}

// fakePaymentHandler approves or declines every charge.
type fakePaymentHandler struct {
	fail    bool
	charged []models.PaymentRequest
}

func (h *fakePaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	h.charged = append(h.charged, req)
	inv := &models.Invoice{InvoiceID: "inv-1", UserID: req.UserID, Amount: req.Amount, Currency: req.Currency}
	if h.fail {
		inv.Status = "failed"
		return inv, errPaymentDeclined
	}
	inv.Status = "paid"
	return inv, nil
}

var errPaymentDeclined = &ValidationError{Field: "payment", Reason: "card declined"}

// fakeReminderScheduler records scheduled booking reminders.
type fakeReminderScheduler struct {
	mu        sync.Mutex
	scheduled []scheduledReminder
}

type scheduledReminder struct {
	payload models.ReminderPayload
	fireAt  time.Time
}

func (s *fakeReminderScheduler) ScheduleBookingReminder(payload models.ReminderPayload, fireAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, scheduledReminder{payload: payload, fireAt: fireAt})
	return nil
}

// fakeNotifier records emitted notifications.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *fakeNotifier) Notify(ctx context.Context, userID, title, message string, action map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, userID+": "+title)
}

// testSpot builds an approved, available spot open on date's weekday with
// two declared slots: 9:00-12:00 and 13:00-17:00.
func testSpot(id, ownerID string, date time.Time) models.ParkingSpot {
	return models.ParkingSpot{
		ID:           id,
		OwnerID:      ownerID,
		Name:         "Central Garage",
		Address:      "1 High St",
		City:         "London",
		PricePerHour: 5,
		Days:         []string{date.Weekday().String()},
		TimeSlots: []models.TimeSlot{
			{Start: 9 * 60, End: 12 * 60},
			{Start: 13 * 60, End: 17 * 60},
		},
		Availability: models.SpotAvailable,
		Status:       models.SpotApproved,
	}
}
