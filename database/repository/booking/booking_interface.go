package bookingRepo

import (
	"context"
	"errors"
	"time"

	"bookmyspot/models"
)

// ErrNotFound is returned when the referenced booking does not exist.
var ErrNotFound = errors.New("booking not found")

// ErrSlotConflict is returned by ReserveIfFree when the requested window
// overlaps a booking that was written first.
var ErrSlotConflict = errors.New("booking overlaps an existing reservation")

// BookingRepository is the persistence contract for the booking ledger.
type BookingRepository interface {
	GetByID(id string) (*models.Booking, error)
	QueryBySpot(spotID string, statusIn []models.BookingStatus, startAfter *time.Time) ([]models.Booking, error)
	QueryByUser(userID string) ([]models.Booking, error)

	// ReserveIfFree inserts the booking only if no blocking booking on the
	// same spot overlaps its [Start, End) window, atomically.
	ReserveIfFree(ctx context.Context, booking *models.Booking) error

	UpdateStatus(id string, status models.BookingStatus) error
	UpdatePayment(id string, status models.PaymentStatus, invoice *models.Invoice) error
}
