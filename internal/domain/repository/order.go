package repository

import (
	"context"
	"time"

	"github.com/vdeep/craftmart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Orders are
// append-only apart from status transitions; nothing ever deletes one.
type OrderRepository interface {
	// Create inserts a new Pending order. A duplicate Pending order for the
	// same (user, product) pair fails with ErrAlreadyExists via the partial
	// unique index.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// LatestByUserProduct returns the most recent order for the pair, or
	// ErrNotFound when the user never ordered the product.
	LatestByUserProduct(ctx context.Context, userID, productID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, page model.PageRequest) ([]model.Order, int64, error)
	ListAll(ctx context.Context, page model.PageRequest) ([]model.Order, int64, error)
	// SetStatus applies a decision. When approvedAt is non-nil it is stamped;
	// an existing approval timestamp is never cleared otherwise. Rejected
	// orders are immutable: moving one to Approved fails with
	// ErrOrderImmutable.
	SetStatus(ctx context.Context, orderID int64, status model.OrderStatus, approvedAt *time.Time) (*model.Order, error)
	// HasApproved reports whether the user ever had an approved order for the
	// product, regardless of the download window.
	HasApproved(ctx context.Context, userID, productID int64) (bool, error)
}
