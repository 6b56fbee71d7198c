package services_test

import (
	"encoding/json"
	"testing"

	"sneakershop/internal/models"
	"sneakershop/internal/repositories"
	"sneakershop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderService(publisher services.EventPublisher, sneakers ...models.Sneaker) *services.OrderService {
	sneakerRepo := repositories.NewMockSneakerRepository()
	for i := range sneakers {
		_ = sneakerRepo.Create(&sneakers[i])
	}
	return services.NewOrderService(repositories.NewMockOrderRepository(), sneakerRepo, publisher)
}

func TestOrderService_CreateOrder(t *testing.T) {
	publisher := new(MockPublisher)
	service := newOrderService(publisher,
		models.Sneaker{ID: "snk-1", Name: "Air Max 90", Brand: "Nike", Price: 120.0, Size: 42, Stock: 10},
		models.Sneaker{ID: "snk-2", Name: "Stan Smith", Brand: "Adidas", Price: 90.0, Size: 43, Stock: 5},
	)

	publisher.On("Publish", "order_events", mock.Anything).Return(nil).Once().Run(func(args mock.Arguments) {
		var event map[string]interface{}
		assert.NoError(t, json.Unmarshal(args.Get(1).([]byte), &event))
		assert.Equal(t, "order.created", event["event"])
		assert.Equal(t, "pending", event["status"])
	})

	order, err := service.CreateOrder("user-123", []models.OrderItem{
		{SneakerID: "snk-1", Quantity: 2},
		{SneakerID: "snk-2", Quantity: 1},
	})

	assert.NoError(t, err)
	assert.Equal(t, "user-123", order.UserID)
	assert.Equal(t, "pending", order.Status)
	// Prices are snapshotted from the catalog at order time.
	assert.Equal(t, 330.0, order.TotalAmount)
	assert.Equal(t, 120.0, order.Items[0].Price)
	publisher.AssertExpectations(t)
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	service := newOrderService(nil,
		models.Sneaker{ID: "snk-1", Name: "Air Max 90", Brand: "Nike", Price: 120.0, Size: 42, Stock: 1},
	)

	_, err := service.CreateOrder("user-123", []models.OrderItem{{SneakerID: "snk-1", Quantity: 3}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestOrderService_CreateOrder_UnknownSneaker(t *testing.T) {
	service := newOrderService(nil)

	_, err := service.CreateOrder("user-123", []models.OrderItem{{SneakerID: "snk-missing", Quantity: 1}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOrderService_CreateOrder_NoItems(t *testing.T) {
	service := newOrderService(nil)

	_, err := service.CreateOrder("user-123", nil)
	assert.Error(t, err)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	service := newOrderService(nil,
		models.Sneaker{ID: "snk-1", Name: "Air Max 90", Brand: "Nike", Price: 120.0, Size: 42, Stock: 10},
	)

	order, err := service.CreateOrder("user-123", []models.OrderItem{{SneakerID: "snk-1", Quantity: 1}})
	assert.NoError(t, err)

	assert.NoError(t, service.UpdateOrderStatus(order.ID, "shipped"))

	got, err := service.GetOrderByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "shipped", got.Status)

	// Unknown status rejected before touching the repository.
	assert.Error(t, service.UpdateOrderStatus(order.ID, "teleported"))

	// Unknown order
	assert.Error(t, service.UpdateOrderStatus("no-such-order", "shipped"))
}

func TestOrderService_GetOrdersForUser(t *testing.T) {
	service := newOrderService(nil,
		models.Sneaker{ID: "snk-1", Name: "Air Max 90", Brand: "Nike", Price: 120.0, Size: 42, Stock: 10},
	)

	_, err := service.CreateOrder("user-a", []models.OrderItem{{SneakerID: "snk-1", Quantity: 1}})
	assert.NoError(t, err)
	_, err = service.CreateOrder("user-b", []models.OrderItem{{SneakerID: "snk-1", Quantity: 2}})
	assert.NoError(t, err)

	orders, err := service.GetOrdersForUser("user-a")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "user-a", orders[0].UserID)

	all, err := service.GetAllOrders()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
