package repositories

import "sneakershop/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Save(cart *models.Cart) error
	DeleteByUserID(userID string) error
}
