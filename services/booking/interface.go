package booking

import (
	"context"
	"time"

	"bookmyspot/models"
)

// CreateBookingInput is the caller-facing payload for reserving a window.
type CreateBookingInput struct {
	UserID        string
	SpotID        string
	Start         time.Time
	End           time.Time
	PaymentMethod string
}

// BookingService is the booking engine: availability queries plus the
// reserve/cancel/complete lifecycle.
type BookingService interface {
	GetAvailableSlots(spotID string, date time.Time) ([]models.AvailableSlot, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	CancelBooking(userID, bookingID string) error
	CompleteBooking(ownerID, bookingID string) error
	ListUserBookings(userID string) ([]models.BookingView, error)
	ListSpotBookings(ownerID, spotID string) ([]models.BookingView, error)
}
