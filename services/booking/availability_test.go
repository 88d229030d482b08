package booking

import (
	"testing"
	"time"

	"bookmyspot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// A Monday well in the future so nothing is filtered as past.
	testDate = time.Date(2030, time.May, 6, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2030, time.May, 1, 8, 0, 0, 0, time.UTC)
)

func at(hour, min int) time.Time {
	return time.Date(2030, time.May, 6, hour, min, 0, 0, time.UTC)
}

func TestResolveExcludesOverlappedSlotWholesale(t *testing.T) {
	spot := testSpot("s1", "owner-1", testDate)
	repo := newFakeBookingRepo(models.Booking{
		ID: "b1", SpotID: "s1", Start: at(10, 0), End: at(11, 0),
		Status: models.BookingActive,
	})
	r := &Resolver{Bookings: repo}

	slots, err := r.ResolveAvailableSlots(spot, testDate, testNow)
	require.NoError(t, err)

	// 10:00-11:00 partially overlaps 9:00-12:00: the whole slot goes.
	require.Len(t, slots, 1)
	assert.Equal(t, 13*60, slots[0].Start)
	assert.Equal(t, 17*60, slots[0].End)
	assert.Equal(t, "2030-05-06", slots[0].Date)
}

func TestResolveReturnsSlotsInDeclaredOrder(t *testing.T) {
	spot := testSpot("s1", "owner-1", testDate)
	r := &Resolver{Bookings: newFakeBookingRepo()}

	slots, err := r.ResolveAvailableSlots(spot, testDate, testNow)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 9*60, slots[0].Start)
	assert.Equal(t, 13*60, slots[1].Start)
	assert.Equal(t, "9:00 AM - 12:00 PM", slots[0].Label)
}

func TestResolvePastBookingsNeverBlock(t *testing.T) {
	spot := testSpot("s1", "owner-1", testDate)
	// Active booking on the same slot, but its start predates "now".
	repo := newFakeBookingRepo(models.Booking{
		ID: "b1", SpotID: "s1",
		Start:  time.Date(2030, time.April, 29, 10, 0, 0, 0, time.UTC),
		End:    time.Date(2030, time.April, 29, 11, 0, 0, 0, time.UTC),
		Status: models.BookingActive,
	})
	r := &Resolver{Bookings: repo}

	slots, err := r.ResolveAvailableSlots(spot, testDate, testNow)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestResolveCancelledBookingsDoNotBlock(t *testing.T) {
	spot := testSpot("s1", "owner-1", testDate)
	repo := newFakeBookingRepo(models.Booking{
		ID: "b1", SpotID: "s1", Start: at(9, 0), End: at(12, 0),
		Status: models.BookingCancelled,
	})
	r := &Resolver{Bookings: repo}

	slots, err := r.ResolveAvailableSlots(spot, testDate, testNow)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestResolveClosedWeekdayYieldsNothing(t *testing.T) {
	spot := testSpot("s1", "owner-1", testDate)
	spot.Days = []string{"Sunday"}
	r := &Resolver{Bookings: newFakeBookingRepo()}

	slots, err := r.ResolveAvailableSlots(spot, testDate, testNow)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestResolveNonBookableSpotsYieldNothing(t *testing.T) {
	r := &Resolver{Bookings: newFakeBookingRepo()}

	pending := testSpot("s1", "owner-1", testDate)
	pending.Status = models.SpotPending

	unavailable := testSpot("s2", "owner-1", testDate)
	unavailable.Availability = models.SpotUnavailable

	noSlots := testSpot("s3", "owner-1", testDate)
	noSlots.TimeSlots = nil

	for _, spot := range []models.ParkingSpot{pending, unavailable, noSlots} {
		slots, err := r.ResolveAvailableSlots(spot, testDate, testNow)
		require.NoError(t, err)
		assert.Empty(t, slots, "spot %s should not be bookable", spot.ID)
	}
}

func TestResolveAdjacentBookingDoesNotBlock(t *testing.T) {
	spot := testSpot("s1", "owner-1", testDate)
	// [12:00, 13:00) touches both slots at the boundary but overlaps neither.
	repo := newFakeBookingRepo(models.Booking{
		ID: "b1", SpotID: "s1", Start: at(12, 0), End: at(13, 0),
		Status: models.BookingActive,
	})
	r := &Resolver{Bookings: repo}

	slots, err := r.ResolveAvailableSlots(spot, testDate, testNow)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}
