package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. New accounts default to RoleCustomer.
const (
	RoleAdmin     = "admin"
	RoleCounseler = "counseler"
	RoleCustomer  = "customer"
)

// User represents an account holder of the store.
//
// Password carries the plaintext only between request parsing and hashing;
// once the account is persisted it holds the bcrypt hash. Neither it, the
// confirmation field, nor the reset/active bookkeeping columns are ever
// serialized in API responses.
type User struct {
	ID              string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PhoneNum        string `json:"phoneNum,omitempty" gorm:"type:varchar(32)"`
	Role            string `json:"role" gorm:"type:varchar(20);default:customer" validate:"omitempty,oneof=admin counseler customer"`
	Password        string `json:"-" gorm:"type:varchar(255)" validate:"required,min=8,max=20"`
	PasswordConfirm string `json:"-" gorm:"-"`
	Address         string `json:"address,omitempty" gorm:"type:varchar(255)"`
	Photo           string `json:"photo,omitempty" gorm:"type:varchar(255)"`
	Gender          string `json:"gender,omitempty" gorm:"type:varchar(10)" validate:"omitempty,oneof=female male other"`

	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   string     `json:"-" gorm:"type:varchar(64)"`
	PasswordResetExpires *time.Time `json:"-"`
	Active               bool       `json:"-" gorm:"default:true"`

	gorm.Model `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
