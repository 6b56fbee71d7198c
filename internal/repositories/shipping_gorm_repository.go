package repositories

import (
	"fmt"

	"sneakershop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMShippingInfoRepository is a GORM implementation of ShippingInfoRepository.
type GORMShippingInfoRepository struct {
	db *gorm.DB
}

// NewGORMShippingInfoRepository creates a new instance of GORMShippingInfoRepository.
func NewGORMShippingInfoRepository(db *gorm.DB) *GORMShippingInfoRepository {
	return &GORMShippingInfoRepository{
		db: db,
	}
}

// Create persists a new shipping-info record.
func (r *GORMShippingInfoRepository) Create(info *models.ShippingInfo) error {
	if info.ID == "" {
		info.ID = uuid.New().String()
	}
	if err := r.db.Create(info).Error; err != nil {
		return fmt.Errorf("failed to create shipping info: %w", err)
	}
	return nil
}

// GetByUserID retrieves the shipping info belonging to a user.
func (r *GORMShippingInfoRepository) GetByUserID(userID string) (*models.ShippingInfo, error) {
	var info models.ShippingInfo
	if err := r.db.First(&info, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shipping info for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get shipping info for user %s: %w", userID, err)
	}
	return &info, nil
}
