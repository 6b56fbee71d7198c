package middleware

import (
	"errors"
	"log"

	"sneakershop/internal/models"
	"sneakershop/internal/services"
	"sneakershop/internal/session"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the locals key under which AuthRequired stores the resolved user.
const UserKey = "currentUser"

// AuthRequired authenticates a request: extract the token from the carrier,
// verify it, and resolve it to a live account. The user is stored in
// c.Locals(UserKey) for downstream handlers.
func AuthRequired(authService *services.AuthService, carrier *session.Carrier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := carrier.Extract(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "fail",
				"message": "You are not logged in! Please log in to access.",
			})
		}

		userID, err := authService.Tokens().Verify(token)
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			message := "Invalid token. Please log in again."
			if errors.Is(err, services.ErrExpiredToken) {
				message = "Your session has expired. Please log in again."
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "fail",
				"message": message,
			})
		}

		// A valid token may outlive its account; treat that as unauthenticated.
		user, err := authService.GetUserByID(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status":  "fail",
					"message": "The user belonging to this token no longer exists.",
				})
			}
			log.Printf("Failed to resolve user %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Could not authenticate request",
			})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// RestrictTo authorizes an authenticated request against a role set.
// Must run after AuthRequired.
func RestrictTo(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(UserKey).(*models.User)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "fail",
				"message": "You are not allowed to perform this action",
			})
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You are not allowed to perform this action",
		})
	}
}

// CurrentUser returns the user resolved by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}
