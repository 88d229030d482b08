package booking

import (
	"time"

	"bookmyspot/models"
)

// DeriveDisplayStatus projects a booking onto its user-facing status from
// the clock and the payment outcome alone. It is re-evaluated on every
// read; the persisted coarse status is never trusted for display.
//
// Rule order, first match wins:
//  1. payment not completed -> cancelled
//  2. before the start      -> upcoming
//  3. within [start, end]   -> active
//  4. otherwise             -> expired
func DeriveDisplayStatus(b models.Booking, now time.Time) models.DisplayStatus {
	if b.PaymentStatus != models.PaymentCompleted {
		return models.DisplayCancelled
	}
	if now.Before(b.Start) {
		return models.DisplayUpcoming
	}
	if !now.After(b.End) {
		return models.DisplayActive
	}
	return models.DisplayExpired
}

// WithDisplayStatus wraps bookings with their derived status for responses.
func WithDisplayStatus(bookings []models.Booking, now time.Time) []models.BookingView {
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, models.BookingView{
			Booking:       b,
			DisplayStatus: DeriveDisplayStatus(b, now),
		})
	}
	return views
}
