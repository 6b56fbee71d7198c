package repositories

import (
	"errors"
	"time"

	"sneakershop/internal/models"
)

// ErrUserNotFound is wrapped by repository errors when no active user
// matches a lookup, so callers can distinguish absence from I/O failure.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data access.
// Reads are scoped to active accounts; deactivated users behave as absent.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetByResetToken(tokenHash string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	UpdatePassword(id string, newHash string) error
	UpdateResetToken(id string, tokenHash string, expires *time.Time) error
}
