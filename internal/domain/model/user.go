package model

import "time"

// User is a verified account holder.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

// PendingSignup is a registration awaiting OTP confirmation. It lives in a
// TTL-bound store and never reaches the users table until verified.
type PendingSignup struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	OTP          string
}

// CartItem is a product selection on a user's account. It carries no
// entitlement semantics; checkout consumes it as a convenience batch.
type CartItem struct {
	ProductID int64
	AddedAt   time.Time
}
