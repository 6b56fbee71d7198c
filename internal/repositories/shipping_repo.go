package repositories

import "sneakershop/internal/models"

// ShippingInfoRepository defines the interface for shipping-info data access.
type ShippingInfoRepository interface {
	Create(info *models.ShippingInfo) error
	GetByUserID(userID string) (*models.ShippingInfo, error)
}
