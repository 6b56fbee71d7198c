package models

import "time"

// CartItem is a single line of a shopping cart.
type CartItem struct {
	SneakerID string `json:"sneaker_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the items a user intends to order. One cart per user.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items     []CartItem `json:"items" gorm:"serializer:json"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
