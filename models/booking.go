package models

import "time"

// BookingStatus is the persisted coarse lifecycle state of a booking.
// Display status is derived on read, never stored (see DisplayStatus).
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// BlockingStatuses are the persisted states that make a booking count
// against a spot's availability.
func BlockingStatuses() []BookingStatus {
	return []BookingStatus{BookingPending, BookingActive}
}

// PaymentStatus tracks the payment side effect attached to a booking.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// DisplayStatus is the pure time-dependent projection shown to users.
type DisplayStatus string

const (
	DisplayUpcoming  DisplayStatus = "upcoming"
	DisplayActive    DisplayStatus = "active"
	DisplayExpired   DisplayStatus = "expired"
	DisplayCancelled DisplayStatus = "cancelled"
)

// Booking is a reservation of a spot for a concrete [Start, End) window.
// Amount is frozen at booking time from the spot's hourly price.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	SpotID        string        `bson:"spot_id" json:"spot_id"`
	OwnerID       string        `bson:"owner_id" json:"owner_id"`
	UserID        string        `bson:"user_id" json:"user_id"`
	Start         time.Time     `bson:"start" json:"start"`
	End           time.Time     `bson:"end" json:"end"`
	Amount        float64       `bson:"amount" json:"amount"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"payment_status"`
	Status        BookingStatus `bson:"status" json:"status"`
	Invoice       *Invoice      `bson:"invoice,omitempty" json:"invoice,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
}

// BookingView is a booking enriched with its derived display status.
type BookingView struct {
	Booking
	DisplayStatus DisplayStatus `json:"display_status"`
}

// Overlaps reports whether two half-open [Start, End) windows intersect.
func (b Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && b.Start.Before(end)
}
