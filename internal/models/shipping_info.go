package models

import "gorm.io/gorm"

// ShippingInfo is a denormalized copy of a user's delivery details,
// created alongside the account for order fulfillment.
type ShippingInfo struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"user_id" gorm:"index;type:varchar(36)"`
	Name       string `json:"name"`
	PhoneNum   string `json:"phoneNum,omitempty" gorm:"type:varchar(32)"`
	Address    string `json:"address,omitempty" gorm:"type:varchar(255)"`
	gorm.Model `json:"-"`
}
