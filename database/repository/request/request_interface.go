package requestRepo

import (
	"errors"
	"time"

	"bookmyspot/models"
)

// ErrNotFound is returned when the referenced request does not exist.
var ErrNotFound = errors.New("spot request not found")

// ErrNotPending is returned by MarkReviewed when the request has already
// reached a terminal status.
var ErrNotPending = errors.New("spot request already reviewed")

// RequestRepository is the persistence contract for spot change requests.
type RequestRepository interface {
	Create(req *models.ParkingSpotRequest) error
	GetByID(id string) (*models.ParkingSpotRequest, error)
	QueryPending() ([]models.ParkingSpotRequest, error)
	QueryByOwner(ownerID string) ([]models.ParkingSpotRequest, error)

	// MarkReviewed flips a pending request to the given terminal status,
	// conditionally: a request that is no longer pending yields ErrNotPending.
	MarkReviewed(id string, status models.RequestStatus, reviewerID, reason string, reviewedAt time.Time) error
}
