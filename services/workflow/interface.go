package workflow

import (
	"context"

	"bookmyspot/models"
)

// WorkflowService governs the submit/approve/reject lifecycle of spot
// change requests. Owners submit; admins resolve; approved payloads are
// applied to the spot store.
type WorkflowService interface {
	SubmitNewSpotRequest(ctx context.Context, ownerID string, fields models.SpotFields) (string, error)
	SubmitEditRequest(ctx context.Context, ownerID, spotID string, fields models.SpotFields) (string, error)
	SubmitAvailabilityUpdate(ctx context.Context, ownerID, spotID string, requested models.Availability) (string, error)
	Approve(ctx context.Context, adminID, requestID string) error
	Reject(ctx context.Context, adminID, requestID, reason string) error
	ListPendingRequests(adminID string) ([]models.ParkingSpotRequest, error)
	ListOwnerRequests(ownerID string) ([]models.ParkingSpotRequest, error)
}
