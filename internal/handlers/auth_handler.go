package handlers

import (
	"errors"
	"fmt"
	"log"

	"sneakershop/internal/middleware"
	"sneakershop/internal/models"
	"sneakershop/internal/services"
	"sneakershop/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and sessions.
type AuthHandler struct {
	authService *services.AuthService
	carrier     *session.Carrier
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, carrier *session.Carrier) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		carrier:     carrier,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the account routes. authRequired guards the
// routes that need an authenticated session.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/signup", h.HandleSignUp)
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Post("/logout", h.HandleLogout)
	userRoutes.Post("/forgot-password", h.HandleForgotPassword)
	userRoutes.Patch("/reset-password", h.HandleResetPassword)
	userRoutes.Patch("/update-password", authRequired, h.HandleUpdatePassword)
	userRoutes.Get("/me", authRequired, h.HandleMe)
}

// SignUpRequest represents the request body for account creation.
type SignUpRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNum        string `json:"phoneNum" validate:"omitempty,max=32"`
	Password        string `json:"password" validate:"required,min=8,max=20"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
	Address         string `json:"address" validate:"omitempty,max=255"`
	Photo           string `json:"photo" validate:"omitempty,max=255"`
	Gender          string `json:"gender" validate:"omitempty,oneof=female male other"`
}

// HandleSignUp handles new account registration: create the user, mint a
// session token, and attach it as a cookie.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return h.validationFail(c, err)
	}

	user := &models.User{
		Name:            req.Name,
		Email:           req.Email,
		PhoneNum:        req.PhoneNum,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Address:         req.Address,
		Photo:           req.Photo,
		Gender:          req.Gender,
	}

	if err := h.authService.SignUp(user); err != nil {
		log.Printf("Error registering user: %v", err)
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "fail",
				"message": err.Error(),
			})
		case errors.Is(err, services.ErrPasswordMismatch), errors.Is(err, services.ErrPasswordLength):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "fail",
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not register user",
		})
	}

	return h.sendToken(c, fiber.StatusCreated, user)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials and issues a session token. Missing
// fields, unknown email, and wrong password all produce the same message.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": services.ErrInvalidCredentials.Error(),
		})
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "fail",
				"message": err.Error(),
			})
		}
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not log in",
		})
	}

	return h.sendToken(c, fiber.StatusOK, user)
}

// HandleLogout clears the session cookie. Always succeeds; any still-valid
// token remains verifiable until its own expiry.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.carrier.Clear(c)
	c.Locals(middleware.UserKey, nil)
	return c.JSON(fiber.Map{
		"status": "success",
	})
}

// UpdatePasswordRequest represents the request body for a password change.
type UpdatePasswordRequest struct {
	Password           string `json:"password" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=8,max=20"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required"`
}

// HandleUpdatePassword changes the authenticated user's password and ends
// the current session by clearing the cookie.
func (h *AuthHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "You are not logged in! Please log in to access.",
		})
	}

	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return h.validationFail(c, err)
	}

	if err := h.authService.UpdatePassword(user, req.Password, req.NewPassword, req.NewPasswordConfirm); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "fail",
				"message": "Your current password is not correct! Try again.",
			})
		case errors.Is(err, services.ErrPasswordMismatch), errors.Is(err, services.ErrPasswordLength):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "fail",
				"message": err.Error(),
			})
		}
		log.Printf("Error updating password for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update password",
		})
	}

	h.carrier.Clear(c)
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "You have updated your password successfully! Please log in again.",
	})
}

// ForgotPasswordRequest represents the request body for a reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleForgotPassword starts a password reset for an existing account.
// The raw token is returned in the response; with a mail collaborator it
// would be delivered out of band instead.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return h.validationFail(c, err)
	}

	token, err := h.authService.ForgotPassword(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "fail",
				"message": "This email doesn't belong to any account! Check your email again.",
			})
		}
		log.Printf("Error creating reset token for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create reset token",
		})
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"message":    "Your password reset token is valid for 10 minutes.",
		"resetToken": token,
	})
}

// ResetPasswordRequest represents the request body for redeeming a reset token.
type ResetPasswordRequest struct {
	Token              string `json:"token" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=8,max=20"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required"`
}

// HandleResetPassword redeems a reset token for a new password.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return h.validationFail(c, err)
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword, req.NewPasswordConfirm); err != nil {
		switch {
		case errors.Is(err, services.ErrResetTokenInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "fail",
				"message": err.Error(),
			})
		case errors.Is(err, services.ErrPasswordMismatch), errors.Is(err, services.ErrPasswordLength):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "fail",
				"message": err.Error(),
			})
		}
		log.Printf("Error resetting password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not reset password",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Your password has been reset! Please log in.",
	})
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "You are not logged in! Please log in to access.",
		})
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": user},
	})
}

// sendToken issues a session token for the user, attaches it as a cookie
// sharing the token's expiry, and writes the success envelope.
func (h *AuthHandler) sendToken(c *fiber.Ctx, status int, user *models.User) error {
	token, expiresAt, err := h.authService.Tokens().Issue(user.ID)
	if err != nil {
		log.Printf("Error issuing token for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not issue session token",
		})
	}

	h.carrier.Attach(c, token, expiresAt)

	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"token":  token,
		"data":   fiber.Map{"user": user},
	})
}

// validationFail maps validator errors onto per-field messages.
func (h *AuthHandler) validationFail(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Validation failed",
		})
	}
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
