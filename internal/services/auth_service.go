package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"sneakershop/internal/models"
	"sneakershop/internal/repositories"
)

// resetTokenTTL bounds how long a password-reset token stays redeemable.
const resetTokenTTL = 10 * time.Minute

// EventPublisher publishes domain events to a message queue.
// Satisfied by *rabbitmq.Client; may be nil, in which case events are skipped.
type EventPublisher interface {
	Publish(queue string, body []byte) error
}

// AuthService handles account lifecycle and credential verification.
type AuthService struct {
	userRepo     repositories.UserRepository
	shippingRepo repositories.ShippingInfoRepository
	tokens       *TokenIssuer
	publisher    EventPublisher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, shippingRepo repositories.ShippingInfoRepository, tokens *TokenIssuer, publisher EventPublisher) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		shippingRepo: shippingRepo,
		tokens:       tokens,
		publisher:    publisher,
	}
}

// Tokens exposes the issuer so handlers can mint session tokens after a
// successful sign-up or login.
func (s *AuthService) Tokens() *TokenIssuer {
	return s.tokens
}

// SignUp registers a new account. The user's Password field carries the
// plaintext on entry and the bcrypt hash after return. The flow is the
// explicit create lifecycle: beforeCreate validates and hashes, the record
// is persisted, afterCreate writes the dependent shipping-info record.
func (s *AuthService) SignUp(user *models.User) error {
	if err := s.beforeCreate(user); err != nil {
		return err
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	return s.afterCreate(user)
}

// beforeCreate validates the plaintext password pair, checks email
// uniqueness, applies defaults, and replaces the password with its hash.
// The confirmation field is cleared and never persisted.
func (s *AuthService) beforeCreate(user *models.User) error {
	if len(user.Password) < 8 || len(user.Password) > 20 {
		return ErrPasswordLength
	}
	if user.Password != user.PasswordConfirm {
		return ErrPasswordMismatch
	}

	exists, err := s.userRepo.ExistsByEmail(user.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		return ErrDuplicateEmail
	}

	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	user.Active = true

	hash, err := HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hash
	user.PasswordConfirm = ""

	return nil
}

// afterCreate writes the shipping-info record carrying a back-reference to
// the user plus denormalized contact fields, then announces the signup.
// There is no transaction spanning the two writes; a failure here leaves
// the user without a shipping record.
func (s *AuthService) afterCreate(user *models.User) error {
	info := &models.ShippingInfo{
		UserID:   user.ID,
		Name:     user.Name,
		PhoneNum: user.PhoneNum,
		Address:  user.Address,
	}
	if err := s.shippingRepo.Create(info); err != nil {
		return fmt.Errorf("user %s created but shipping info failed: %w", user.ID, err)
	}

	s.publishEvent("user_events", map[string]interface{}{
		"event":  "user.registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return nil
}

// Login verifies an email/password pair and returns the matching user.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID resolves a verified token's user ID to a live account.
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// UpdatePassword changes an authenticated user's password. The current
// password must verify against the stored hash and the new pair must match.
// Already-issued tokens stay valid until their own expiry; the caller is
// expected to clear the session cookie.
func (s *AuthService) UpdatePassword(user *models.User, current, newPassword, newPasswordConfirm string) error {
	if !CheckPassword(current, user.Password) {
		return ErrInvalidCredentials
	}
	if newPassword != newPasswordConfirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < 8 || len(newPassword) > 20 {
		return ErrPasswordLength
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return fmt.Errorf("failed to persist new password: %w", err)
	}
	return nil
}

// ForgotPassword starts a password reset for the given email. The raw
// token is returned for delivery; only its SHA-256 is stored, with a
// short expiry. Fails when the email belongs to no account.
func (s *AuthService) ForgotPassword(email string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	expires := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.UpdateResetToken(user.ID, hashResetToken(token), &expires); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	s.publishEvent("user_events", map[string]interface{}{
		"event":  "user.password_reset",
		"userID": user.ID,
		"email":  user.Email,
	})

	return token, nil
}

// ResetPassword redeems a reset token for a new password. The token must
// match a stored hash that has not expired, and the new pair must match.
func (s *AuthService) ResetPassword(token, newPassword, newPasswordConfirm string) error {
	user, err := s.userRepo.GetByResetToken(hashResetToken(token))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		return ErrResetTokenInvalid
	}
	if newPassword != newPasswordConfirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < 8 || len(newPassword) > 20 {
		return ErrPasswordLength
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return fmt.Errorf("failed to persist new password: %w", err)
	}
	if err := s.userRepo.UpdateResetToken(user.ID, "", nil); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *AuthService) publishEvent(queue string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", queue, err)
		return
	}
	if err := s.publisher.Publish(queue, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", queue, err)
	}
}
