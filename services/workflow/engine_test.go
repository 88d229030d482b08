package workflow

import (
	"context"
	"testing"

	"bookmyspot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitNewSpotRequestValidation(t *testing.T) {
	engine, _, _, _ := newTestEngine()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.SpotFields)
	}{
		{"missing name", func(f *models.SpotFields) { f.Name = " " }},
		{"missing address", func(f *models.SpotFields) { f.Address = "" }},
		{"missing city", func(f *models.SpotFields) { f.City = "" }},
		{"negative price", func(f *models.SpotFields) { f.PricePerHour = -1 }},
		{"no weekdays", func(f *models.SpotFields) { f.Days = nil }},
		{"no time slots", func(f *models.SpotFields) { f.TimeSlots = nil }},
		{"inverted slot", func(f *models.SpotFields) { f.TimeSlots = []models.TimeSlot{{Start: 600, End: 540}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(&fields)
			_, err := engine.SubmitNewSpotRequest(ctx, "owner-1", fields)
			var validation *ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestSubmitNewSpotRequestFilesPending(t *testing.T) {
	engine, _, requests, _ := newTestEngine()

	id, err := engine.SubmitNewSpotRequest(context.Background(), "owner-1", validFields())
	require.NoError(t, err)

	req, err := requests.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestNewSpot, req.Type)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, "owner@example.com", req.OwnerEmail)
	require.NotNil(t, req.NewSpotData)
	assert.Nil(t, req.RequestedSpotData)
}

func TestSubmitEditRequestOwnershipGuard(t *testing.T) {
	engine, _, _, _ := newTestEngine()

	_, err := engine.SubmitEditRequest(context.Background(), "owner-2", "spot-1", validFields())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSubmitEditRequestSnapshotsCurrentState(t *testing.T) {
	engine, _, requests, _ := newTestEngine()

	fields := validFields()
	fields.Name = "Side Alley Deluxe"
	id, err := engine.SubmitEditRequest(context.Background(), "owner-1", "spot-1", fields)
	require.NoError(t, err)

	req, err := requests.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestEditSpot, req.Type)
	require.NotNil(t, req.CurrentSpotData)
	assert.Equal(t, "Side Alley", req.CurrentSpotData.Name)
	assert.Equal(t, "Side Alley Deluxe", req.RequestedSpotData.Name)
}

func TestSubmitAvailabilityUpdateSnapshots(t *testing.T) {
	engine, _, requests, _ := newTestEngine()

	id, err := engine.SubmitAvailabilityUpdate(context.Background(), "owner-1", "spot-1", models.SpotUnavailable)
	require.NoError(t, err)

	req, err := requests.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.SpotAvailable, req.CurrentAvailability)
	assert.Equal(t, models.SpotUnavailable, req.RequestedAvailability)
}

func TestApproveNewSpotCreatesLiveListing(t *testing.T) {
	engine, spots, requests, notifier := newTestEngine()
	ctx := context.Background()

	fields := validFields()
	fields.Name = "A"
	id, err := engine.SubmitNewSpotRequest(ctx, "owner-1", fields)
	require.NoError(t, err)

	before := len(spots.all())
	require.NoError(t, engine.Approve(ctx, "admin-1", id))

	all := spots.all()
	require.Len(t, all, before+1)
	var created *models.ParkingSpot
	for i := range all {
		if all[i].Name == "A" {
			created = &all[i]
		}
	}
	require.NotNil(t, created)
	assert.Equal(t, models.SpotApproved, created.Status)
	assert.Equal(t, models.SpotAvailable, created.Availability)
	assert.Equal(t, 5.0, created.PricePerHour)
	assert.Equal(t, "owner-1", created.OwnerID)

	req, err := requests.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, req.Status)
	assert.Equal(t, "admin-1", req.ReviewedBy)
	assert.NotNil(t, req.ReviewedAt)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "owner-1: Request approved", notifier.calls[0])
}

func TestApproveEditOverwritesSpot(t *testing.T) {
	engine, spots, _, _ := newTestEngine()
	ctx := context.Background()

	fields := validFields()
	fields.Name = "Renamed"
	fields.PricePerHour = 9
	id, err := engine.SubmitEditRequest(ctx, "owner-1", "spot-1", fields)
	require.NoError(t, err)
	require.NoError(t, engine.Approve(ctx, "admin-1", id))

	spot, err := spots.GetByID("spot-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", spot.Name)
	assert.Equal(t, 9.0, spot.PricePerHour)
}

func TestApproveAvailabilityUpdate(t *testing.T) {
	engine, spots, _, _ := newTestEngine()
	ctx := context.Background()

	id, err := engine.SubmitAvailabilityUpdate(ctx, "owner-1", "spot-1", models.SpotUnavailable)
	require.NoError(t, err)
	require.NoError(t, engine.Approve(ctx, "admin-1", id))

	spot, err := spots.GetByID("spot-1")
	require.NoError(t, err)
	assert.Equal(t, models.SpotUnavailable, spot.Availability)
}

func TestApproveRequiresAdminRole(t *testing.T) {
	engine, _, _, _ := newTestEngine()
	ctx := context.Background()

	id, err := engine.SubmitNewSpotRequest(ctx, "owner-1", validFields())
	require.NoError(t, err)

	assert.ErrorIs(t, engine.Approve(ctx, "owner-1", id), ErrUnauthorized)
	assert.ErrorIs(t, engine.Approve(ctx, "driver-1", id), ErrUnauthorized)
	assert.ErrorIs(t, engine.Approve(ctx, "nobody", id), ErrUnauthorized)
}

func TestTerminalRequestsCannotBeReviewedAgain(t *testing.T) {
	engine, spots, _, _ := newTestEngine()
	ctx := context.Background()

	id, err := engine.SubmitNewSpotRequest(ctx, "owner-1", validFields())
	require.NoError(t, err)
	require.NoError(t, engine.Approve(ctx, "admin-1", id))

	created := len(spots.all())
	assert.ErrorIs(t, engine.Approve(ctx, "admin-1", id), ErrInvalidState)
	assert.ErrorIs(t, engine.Reject(ctx, "admin-1", id, "too late"), ErrInvalidState)
	// The double approve must not create a second spot.
	assert.Len(t, spots.all(), created)

	rejectedID, err := engine.SubmitNewSpotRequest(ctx, "owner-1", validFields())
	require.NoError(t, err)
	require.NoError(t, engine.Reject(ctx, "admin-1", rejectedID, "duplicate listing"))
	assert.ErrorIs(t, engine.Approve(ctx, "admin-1", rejectedID), ErrInvalidState)
}

func TestRejectRequiresReason(t *testing.T) {
	engine, _, _, _ := newTestEngine()
	ctx := context.Background()

	id, err := engine.SubmitNewSpotRequest(ctx, "owner-1", validFields())
	require.NoError(t, err)

	var validation *ValidationError
	assert.ErrorAs(t, engine.Reject(ctx, "admin-1", id, ""), &validation)
	assert.ErrorAs(t, engine.Reject(ctx, "admin-1", id, "   "), &validation)
}

func TestRejectLeavesStoreUntouched(t *testing.T) {
	engine, spots, requests, notifier := newTestEngine()
	ctx := context.Background()

	id, err := engine.SubmitEditRequest(ctx, "owner-1", "spot-1", validFields())
	require.NoError(t, err)

	before, err := spots.GetByID("spot-1")
	require.NoError(t, err)

	require.NoError(t, engine.Reject(ctx, "admin-1", id, "photos missing"))

	after, err := spots.GetByID("spot-1")
	require.NoError(t, err)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.PricePerHour, after.PricePerHour)

	req, err := requests.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, req.Status)
	assert.Equal(t, "photos missing", req.RejectionReason)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "owner-1: Request rejected", notifier.calls[0])
}

func TestListPendingRequestsRequiresAdmin(t *testing.T) {
	engine, _, _, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.SubmitNewSpotRequest(ctx, "owner-1", validFields())
	require.NoError(t, err)

	_, err = engine.ListPendingRequests("owner-1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	pending, err := engine.ListPendingRequests("admin-1")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
