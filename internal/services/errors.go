package services

import "errors"

// Sentinel errors surfaced by the auth flows. Handlers map these onto
// HTTP statuses; anything else is treated as an internal failure.
var (
	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// so responses never confirm whether an email belongs to an account.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrDuplicateEmail   = errors.New("this email is already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordMismatch = errors.New("password and password confirm do not match")
	ErrPasswordLength   = errors.New("password must be between 8 and 20 characters")

	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")
)
