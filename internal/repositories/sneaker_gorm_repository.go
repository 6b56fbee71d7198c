package repositories

import (
	"fmt"

	"sneakershop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSneakerRepository is a GORM implementation of SneakerRepository.
type GORMSneakerRepository struct {
	db *gorm.DB
}

// NewGORMSneakerRepository creates a new instance of GORMSneakerRepository.
func NewGORMSneakerRepository(db *gorm.DB) *GORMSneakerRepository {
	return &GORMSneakerRepository{
		db: db,
	}
}

// GetAll retrieves all sneakers from the database.
func (r *GORMSneakerRepository) GetAll() ([]models.Sneaker, error) {
	var sneakers []models.Sneaker
	if err := r.db.Find(&sneakers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sneakers: %w", err)
	}
	return sneakers, nil
}

// GetByID retrieves a single sneaker by its ID.
func (r *GORMSneakerRepository) GetByID(id string) (*models.Sneaker, error) {
	var sneaker models.Sneaker
	if err := r.db.First(&sneaker, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("sneaker with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get sneaker by ID %s: %w", id, err)
	}
	return &sneaker, nil
}

// Create creates a new sneaker in the database.
func (r *GORMSneakerRepository) Create(sneaker *models.Sneaker) error {
	if sneaker.ID == "" {
		sneaker.ID = uuid.New().String()
	}
	if err := r.db.Create(sneaker).Error; err != nil {
		return fmt.Errorf("failed to create sneaker: %w", err)
	}
	return nil
}

// Update updates an existing sneaker in the database.
func (r *GORMSneakerRepository) Update(sneaker *models.Sneaker) error {
	res := r.db.Save(sneaker) // Save updates all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update sneaker: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound for an update that
		// matched nothing, so we check RowsAffected.
		return fmt.Errorf("sneaker with ID %s not found for update", sneaker.ID)
	}
	return nil
}

// Delete deletes a sneaker by its ID.
func (r *GORMSneakerRepository) Delete(id string) error {
	res := r.db.Delete(&models.Sneaker{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete sneaker: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sneaker with ID %s not found for deletion", id)
	}
	return nil
}
