package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrAlreadyInCart      = errors.New("already in cart")
	ErrNotOwner           = errors.New("order belongs to another user")
	ErrAccessExpired      = errors.New("download access expired")
	ErrNotPurchased       = errors.New("product not purchased")
	ErrAlreadyReviewed    = errors.New("product already reviewed")
	ErrValidation         = errors.New("invalid request")
	ErrOrderImmutable     = errors.New("rejected order is immutable")

	// ErrNothingPurchasable reports a checkout where the entitlement policy
	// skipped every requested item. Callers wrap it with the aggregate reason.
	ErrNothingPurchasable = errors.New("nothing purchasable")
)
