package repository

import (
	"context"

	"github.com/vdeep/craftmart/internal/domain/model"
)

// ProductSort orders catalog listings.
type ProductSort string

const (
	SortNewest ProductSort = "newest"
	SortOldest ProductSort = "oldest"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Search string
	Sort   ProductSort
}

// ProductRepository describes catalog persistence. The order engine only
// reads price and existence; the admin surface owns writes.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	// FindByIDs resolves a batch; unknown ids are silently absent from the result.
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	List(ctx context.Context, filter ProductFilter, page model.PageRequest) ([]model.Product, int64, error)
	Delete(ctx context.Context, id int64) error
	// AddReview stores a review and refreshes the product's rating aggregates.
	// A second review by the same user fails with ErrAlreadyReviewed.
	AddReview(ctx context.Context, review *model.Review) error
	HasReview(ctx context.Context, productID, userID int64) (bool, error)
}
