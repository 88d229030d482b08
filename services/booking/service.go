package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "bookmyspot/database/repository/booking"
	spotRepo "bookmyspot/database/repository/spot"
	"bookmyspot/models"
	"bookmyspot/services/events"
	"bookmyspot/services/notification"
	"bookmyspot/services/tasks"
	"bookmyspot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnauthorized is returned when the caller does not own the booking or
// spot they are acting on.
var ErrUnauthorized = errors.New("caller is not allowed to act on this booking")

// ErrNotCancellable is returned when a booking has already reached a
// terminal persisted status.
var ErrNotCancellable = errors.New("booking can no longer be cancelled")

// reminderLead is how long before a booking starts its reminder fires.
const reminderLead = 30 * time.Minute

// DefaultBookingService is the production booking engine.
type DefaultBookingService struct {
	SpotRepo       spotRepo.SpotRepository
	BookingRepo    bookingRepo.BookingRepository
	PaymentHandler PaymentHandler
	Notifier       notification.NotificationService
	Reminders      tasks.Scheduler
	Events         *events.Hub
	Currency       string
}

func (s *DefaultBookingService) resolver() *Resolver {
	return &Resolver{Bookings: s.BookingRepo}
}

// GetAvailableSlots resolves a spot's free slots on the given date.
func (s *DefaultBookingService) GetAvailableSlots(spotID string, date time.Time) ([]models.AvailableSlot, error) {
	spot, err := s.SpotRepo.GetByID(spotID)
	if err != nil {
		return nil, err
	}
	return s.resolver().ResolveAvailableSlots(*spot, date, time.Now())
}

// CreateBooking reserves a window on a spot: it validates the window
// against the spot's free slots, writes a pending booking atomically, then
// charges the renter and promotes the booking to active. A payment failure
// cancels the just-written reservation.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if !input.End.After(input.Start) {
		return nil, &ValidationError{Field: "end", Reason: "must be after start"}
	}

	spot, err := s.SpotRepo.GetByID(input.SpotID)
	if err != nil {
		return nil, err
	}
	if spot.Status != models.SpotApproved || spot.Availability != models.SpotAvailable {
		return nil, ErrSpotNotBookable
	}

	now := time.Now()
	slots, err := s.resolver().ResolveAvailableSlots(*spot, input.Start, now)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve availability: %w", err)
	}
	if !windowInsideAny(slots, input.Start, input.End) {
		return nil, ErrSlotUnavailable
	}

	hours := input.End.Sub(input.Start).Hours()
	amount := spot.PricePerHour * hours

	b := &models.Booking{
		ID:            uuid.New().String(),
		SpotID:        spot.ID,
		OwnerID:       spot.OwnerID,
		UserID:        input.UserID,
		Start:         input.Start,
		End:           input.End,
		Amount:        amount,
		PaymentStatus: models.PaymentPending,
		Status:        models.BookingPending,
		CreatedAt:     now,
	}

	if err := s.BookingRepo.ReserveIfFree(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			logger.Info("booking lost slot race",
				zap.String("spotID", spot.ID), zap.Time("start", input.Start))
		}
		return nil, err
	}

	payReq := models.PaymentRequest{
		UserID:      input.UserID,
		Amount:      amount,
		Currency:    s.Currency,
		Method:      input.PaymentMethod,
		Description: fmt.Sprintf("Parking at %s", spot.Name),
		Metadata:    map[string]string{"booking_id": b.ID, "spot_id": spot.ID},
	}
	invoice, payErr := s.PaymentHandler.ProcessPayment(ctx, payReq)
	if payErr != nil {
		// Release the window: a failed payment must not keep blocking it.
		if err := s.BookingRepo.UpdatePayment(b.ID, models.PaymentFailed, invoice); err != nil {
			logger.Error("failed to record payment failure", zap.String("bookingID", b.ID), zap.Error(err))
		}
		if err := s.BookingRepo.UpdateStatus(b.ID, models.BookingCancelled); err != nil {
			logger.Error("failed to cancel unpaid booking", zap.String("bookingID", b.ID), zap.Error(err))
		}
		return nil, payErr
	}

	if err := s.BookingRepo.UpdatePayment(b.ID, models.PaymentCompleted, invoice); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	if err := s.BookingRepo.UpdateStatus(b.ID, models.BookingActive); err != nil {
		return nil, fmt.Errorf("failed to activate booking: %w", err)
	}
	b.PaymentStatus = models.PaymentCompleted
	b.Status = models.BookingActive
	b.Invoice = invoice

	action := map[string]string{"booking_id": b.ID, "spot_id": spot.ID}
	s.Notifier.Notify(ctx, b.UserID, "Booking confirmed",
		fmt.Sprintf("Your parking at %s is booked from %s.", spot.Name, b.Start.Format(time.RFC822)), action)
	s.Notifier.Notify(ctx, spot.OwnerID, "New booking",
		fmt.Sprintf("%s was booked from %s.", spot.Name, b.Start.Format(time.RFC822)), action)

	if s.Reminders != nil {
		fireAt := b.Start.Add(-reminderLead)
		if fireAt.After(now) {
			payload := models.ReminderPayload{
				UserID:    b.UserID,
				BookingID: b.ID,
				SpotID:    spot.ID,
				Title:     "Parking starts soon",
				Body:      fmt.Sprintf("Your parking at %s starts at %s.", spot.Name, b.Start.Format(time.RFC822)),
			}
			if err := s.Reminders.ScheduleBookingReminder(payload, fireAt); err != nil {
				logger.Error("failed to schedule booking reminder",
					zap.String("bookingID", b.ID), zap.Error(err))
			}
		}
	}

	if s.Events != nil {
		s.Events.Publish(events.Event{SpotID: spot.ID, Kind: "booking_created", Payload: b})
	}

	logger.Info("booking created",
		zap.String("bookingID", b.ID), zap.String("spotID", spot.ID), zap.Float64("amount", amount))
	return b, nil
}

// CancelBooking cancels a renter's own booking before completion.
func (s *DefaultBookingService) CancelBooking(userID, bookingID string) error {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrUnauthorized
	}
	if b.Status == models.BookingCompleted || b.Status == models.BookingCancelled {
		return ErrNotCancellable
	}

	if err := s.BookingRepo.UpdateStatus(bookingID, models.BookingCancelled); err != nil {
		return err
	}

	ctx := context.Background()
	s.Notifier.Notify(ctx, b.OwnerID, "Booking cancelled",
		fmt.Sprintf("A booking from %s was cancelled.", b.Start.Format(time.RFC822)),
		map[string]string{"booking_id": b.ID, "spot_id": b.SpotID})

	if s.Events != nil {
		s.Events.Publish(events.Event{SpotID: b.SpotID, Kind: "booking_cancelled", Payload: b.ID})
	}
	return nil
}

// CompleteBooking lets the spot owner mark a finished booking completed.
func (s *DefaultBookingService) CompleteBooking(ownerID, bookingID string) error {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b.OwnerID != ownerID {
		return ErrUnauthorized
	}
	if b.Status != models.BookingActive {
		return ErrNotCancellable
	}
	return s.BookingRepo.UpdateStatus(bookingID, models.BookingCompleted)
}

// ListUserBookings returns a renter's bookings with derived display status.
func (s *DefaultBookingService) ListUserBookings(userID string) ([]models.BookingView, error) {
	bookings, err := s.BookingRepo.QueryByUser(userID)
	if err != nil {
		return nil, err
	}
	return WithDisplayStatus(bookings, time.Now()), nil
}

// ListSpotBookings returns a spot's bookings to its owner.
func (s *DefaultBookingService) ListSpotBookings(ownerID, spotID string) ([]models.BookingView, error) {
	spot, err := s.SpotRepo.GetByID(spotID)
	if err != nil {
		return nil, err
	}
	if spot.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	bookings, err := s.BookingRepo.QueryBySpot(spotID, nil, nil)
	if err != nil {
		return nil, err
	}
	return WithDisplayStatus(bookings, time.Now()), nil
}

// windowInsideAny reports whether [start, end) fits entirely inside one of
// the resolved slots.
func windowInsideAny(slots []models.AvailableSlot, start, end time.Time) bool {
	for _, slot := range slots {
		if !start.Before(slot.StartAt) && !end.After(slot.EndAt) {
			return true
		}
	}
	return false
}
