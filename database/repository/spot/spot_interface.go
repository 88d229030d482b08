package spotRepo

import (
	"errors"

	"bookmyspot/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when the referenced spot does not exist.
var ErrNotFound = errors.New("parking spot not found")

// SpotRepository is the persistence contract for parking spot listings.
type SpotRepository interface {
	GetByID(id string) (*models.ParkingSpot, error)
	QueryByOwner(ownerID string) ([]models.ParkingSpot, error)
	QueryApproved(city string) ([]models.ParkingSpot, error)
	Create(spot *models.ParkingSpot) error
	UpdateFields(id string, fields bson.M) error
	SetAvailability(id string, availability models.Availability) error
	Delete(id string) error
}
