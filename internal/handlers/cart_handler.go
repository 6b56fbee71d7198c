package handlers

import (
	"log"
	"strings"

	"sneakershop/internal/middleware"
	"sneakershop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for shopping carts.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes. All of them require an
// authenticated session; each user only ever sees their own cart.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cartRoutes := router.Group("/carts", authRequired)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:sneakerId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the current user's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	cart, err := h.service.GetCart(user.ID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not retrieve cart",
		})
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"cart": cart},
	})
}

// AddItemRequest represents the request body for adding a cart item.
type AddItemRequest struct {
	SneakerID string `json:"sneaker_id"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem puts a sneaker into the current user's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid request body",
		})
	}
	if req.SneakerID == "" || req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "sneaker_id and a positive quantity are required",
		})
	}

	cart, err := h.service.AddItem(user.ID, req.SneakerID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item to cart for user %s: %v", user.ID, err)
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "insufficient stock") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "fail",
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not add item to cart",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"cart": cart},
	})
}

// HandleRemoveItem takes a sneaker out of the current user's cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	sneakerID := c.Params("sneakerId")

	cart, err := h.service.RemoveItem(user.ID, sneakerID)
	if err != nil {
		log.Printf("Error removing item from cart for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not remove item from cart",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"cart": cart},
	})
}

// HandleClearCart empties the current user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.service.ClearCart(user.ID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not clear cart",
		})
	}
	return c.JSON(fiber.Map{
		"status": "success",
	})
}
