package repositories

import "sneakershop/internal/models"

// SneakerRepository defines the interface for sneaker catalog data access.
type SneakerRepository interface {
	GetAll() ([]models.Sneaker, error)
	GetByID(id string) (*models.Sneaker, error)
	Create(sneaker *models.Sneaker) error
	Update(sneaker *models.Sneaker) error
	Delete(id string) error
}
