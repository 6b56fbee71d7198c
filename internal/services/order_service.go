package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sneakershop/internal/models"
	"sneakershop/internal/repositories"

	"github.com/google/uuid"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	sneakerRepo repositories.SneakerRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, sneakerRepo repositories.SneakerRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		sneakerRepo: sneakerRepo,
		publisher:   publisher,
	}
}

// GetAllOrders retrieves every order in the store.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersForUser retrieves the orders placed by one user.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetAllByUserID(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder validates stock, snapshots prices, persists the order, and
// publishes an order.created event.
func (s *OrderService) CreateOrder(userID string, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("an order needs at least one item")
	}

	var totalAmount float64
	var processedItems []models.OrderItem

	for _, item := range items {
		sneaker, err := s.sneakerRepo.GetByID(item.SneakerID)
		if err != nil {
			return nil, fmt.Errorf("sneaker %s not found: %w", item.SneakerID, err)
		}
		if sneaker.Stock < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for sneaker %s (requested: %d, available: %d)", sneaker.Name, item.Quantity, sneaker.Stock)
		}

		// Price at the time of order creation, not whatever the catalog
		// says later.
		processedItems = append(processedItems, models.OrderItem{
			SneakerID: item.SneakerID,
			Quantity:  item.Quantity,
			Price:     sneaker.Price,
		})
		totalAmount += sneaker.Price * float64(item.Quantity)
	}

	newOrder := &models.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Items:       processedItems,
		TotalAmount: totalAmount,
		Status:      "pending",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"event":   "order.created",
			"orderID": newOrder.ID,
			"userID":  newOrder.UserID,
			"status":  newOrder.Status,
			"total":   newOrder.TotalAmount,
		}
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal order event: %v", err)
		} else if err := s.publisher.Publish("order_events", body); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", newOrder.ID, err)
		}
	}

	return newOrder, nil
}

// UpdateOrderStatus moves an order through its lifecycle.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{"pending": true, "processing": true, "shipped": true, "delivered": true, "cancelled": true}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}
