package handlers

import (
	"fmt"
	"log"
	"strings"

	"sneakershop/internal/models"
	"sneakershop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SneakerHandler handles HTTP requests for the sneaker catalog.
type SneakerHandler struct {
	service  *services.SneakerService
	validate *validator.Validate
}

// NewSneakerHandler creates a new SneakerHandler.
func NewSneakerHandler(service *services.SneakerService) *SneakerHandler {
	return &SneakerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes. Reads are public; mutations
// require an authenticated admin.
func (h *SneakerHandler) RegisterRoutes(router fiber.Router, authRequired, adminOnly fiber.Handler) {
	sneakerRoutes := router.Group("/sneakers")
	sneakerRoutes.Get("/", h.HandleGetSneakers)
	sneakerRoutes.Get("/:id", h.HandleGetSneakerByID)
	sneakerRoutes.Post("/", authRequired, adminOnly, h.HandleCreateSneaker)
	sneakerRoutes.Put("/:id", authRequired, adminOnly, h.HandleUpdateSneaker)
	sneakerRoutes.Delete("/:id", authRequired, adminOnly, h.HandleDeleteSneaker)
}

// HandleGetSneakers retrieves the full catalog.
func (h *SneakerHandler) HandleGetSneakers(c *fiber.Ctx) error {
	sneakers, err := h.service.GetAllSneakers()
	if err != nil {
		log.Printf("Error getting all sneakers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not retrieve sneakers",
		})
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"sneakers": sneakers},
	})
}

// HandleGetSneakerByID retrieves a single sneaker.
func (h *SneakerHandler) HandleGetSneakerByID(c *fiber.Ctx) error {
	id := c.Params("id")
	sneaker, err := h.service.GetSneakerByID(id)
	if err != nil {
		log.Printf("Error getting sneaker by ID %s: %v", id, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "fail",
				"message": fmt.Sprintf("Sneaker with ID %s not found", id),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not retrieve sneaker",
		})
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"sneaker": sneaker},
	})
}

// HandleCreateSneaker adds a sneaker to the catalog.
func (h *SneakerHandler) HandleCreateSneaker(c *fiber.Ctx) error {
	var sneaker models.Sneaker
	if err := c.BodyParser(&sneaker); err != nil {
		log.Printf("Error parsing sneaker request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(sneaker); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreateSneaker(&sneaker); err != nil {
		log.Printf("Error creating sneaker: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create sneaker",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"sneaker": sneaker},
	})
}

// HandleUpdateSneaker updates an existing sneaker.
func (h *SneakerHandler) HandleUpdateSneaker(c *fiber.Ctx) error {
	id := c.Params("id")

	var sneaker models.Sneaker
	if err := c.BodyParser(&sneaker); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid request body",
		})
	}
	sneaker.ID = id

	if err := h.service.UpdateSneaker(&sneaker); err != nil {
		log.Printf("Error updating sneaker %s: %v", id, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "fail",
				"message": fmt.Sprintf("Sneaker with ID %s not found", id),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update sneaker",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"sneaker": sneaker},
	})
}

// HandleDeleteSneaker removes a sneaker from the catalog.
func (h *SneakerHandler) HandleDeleteSneaker(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteSneaker(id); err != nil {
		log.Printf("Error deleting sneaker %s: %v", id, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "fail",
				"message": fmt.Sprintf("Sneaker with ID %s not found", id),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete sneaker",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}
