package booking

import (
	"time"

	bookingRepo "bookmyspot/database/repository/booking"
	"bookmyspot/models"
)

// Resolver computes the declared slots of a spot that are still free on a
// given date. Read-only; an empty result is a valid answer, not an error.
type Resolver struct {
	Bookings bookingRepo.BookingRepository
}

// ResolveAvailableSlots returns the spot's declared slots on date that do
// not overlap any forward-looking blocking booking, in declared order.
//
// Only bookings with persisted status pending or active and a start at or
// after now block a slot; past bookings never do. A slot overlapped by any
// blocking booking is discarded wholesale, even on partial overlap.
func (r *Resolver) ResolveAvailableSlots(spot models.ParkingSpot, date, now time.Time) ([]models.AvailableSlot, error) {
	if spot.Status != models.SpotApproved || spot.Availability != models.SpotAvailable {
		return nil, nil
	}
	if len(spot.TimeSlots) == 0 {
		return nil, nil
	}
	if len(spot.Days) > 0 && !spot.OpenOn(date) {
		return nil, nil
	}

	blocking, err := r.Bookings.QueryBySpot(spot.ID, models.BlockingStatuses(), &now)
	if err != nil {
		return nil, err
	}

	var available []models.AvailableSlot
	for _, ts := range spot.TimeSlots {
		startAt := slotInstant(date, ts.Start)
		endAt := slotInstant(date, ts.End)

		if overlapsAny(blocking, startAt, endAt) {
			continue
		}
		available = append(available, models.AvailableSlot{
			Start:   ts.Start,
			End:     ts.End,
			StartAt: startAt,
			EndAt:   endAt,
			Date:    date.Format("2006-01-02"),
			Label:   ts.Label(),
		})
	}
	return available, nil
}

// slotInstant anchors minutes-from-midnight onto a calendar date.
func slotInstant(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0, date.Location())
}

// overlapsAny applies the half-open interval test against every booking.
func overlapsAny(bookings []models.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
