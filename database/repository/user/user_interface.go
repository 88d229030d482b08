package userRepo

import (
	"errors"

	"bookmyspot/models"
)

// ErrNotFound is returned when the referenced user does not exist.
var ErrNotFound = errors.New("user not found")

// UserRepository is the persistence contract for marketplace accounts.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	SetFCMToken(id, token string) error
}
