package repository

import (
	"context"

	"github.com/vdeep/craftmart/internal/domain/model"
)

// UserRepository describes persistence operations with verified users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// CartRepository manages per-user product selections.
type CartRepository interface {
	// Add puts a product in the cart; duplicates fail with ErrAlreadyInCart.
	Add(ctx context.Context, userID, productID int64) error
	List(ctx context.Context, userID int64, page model.PageRequest) ([]model.CartItem, int64, error)
	Remove(ctx context.Context, userID, productID int64) error
}
