package repositories

import (
	"fmt"
	"time"

	"sneakershop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create persists a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves an active user by email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ? AND active = ?", email, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves an active user by ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ? AND active = ?", id, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %s not found: %w", id, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByResetToken retrieves the active user holding the given hashed
// password-reset token. Expiry is checked by the caller.
func (r *GORMUserRepository) GetByResetToken(tokenHash string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "password_reset_token = ? AND active = ?", tokenHash, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no user holds this reset token: %w", ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return &user, nil
}

// ExistsByEmail reports whether any active user has the given email.
func (r *GORMUserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ? AND active = ?", email, true).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email %s: %w", email, err)
	}
	return count > 0, nil
}

// UpdatePassword persists a new password hash and stamps the change time.
func (r *GORMUserRepository) UpdatePassword(id string, newHash string) error {
	now := time.Now()
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password":            newHash,
		"password_changed_at": &now,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update password for user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for password update: %w", id, ErrUserNotFound)
	}
	return nil
}

// UpdateResetToken stores the hashed password-reset token and its expiry.
// Passing an empty hash and nil expiry clears the reset state.
func (r *GORMUserRepository) UpdateResetToken(id string, tokenHash string, expires *time.Time) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_reset_token":   tokenHash,
		"password_reset_expires": expires,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update reset token for user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for reset token update: %w", id, ErrUserNotFound)
	}
	return nil
}
