package models

import "time"

// OrderItem is a single line of an order. Price is the sneaker's price
// at the time the order was placed.
type OrderItem struct {
	SneakerID string  `json:"sneaker_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order represents a customer order.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Items       []OrderItem `json:"items" gorm:"serializer:json"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"` // "pending", "processing", "shipped", "delivered", "cancelled"
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
