package usecase

import (
	"context"
	"time"

	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
)

// CartEntry pairs a cart line with its resolved product.
type CartEntry struct {
	Product model.Product
	AddedAt time.Time
}

// CartUseCase manages product selections on a user's account.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// Add puts a product in the cart after confirming it exists.
func (u *CartUseCase) Add(ctx context.Context, userID, productID int64) error {
	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return u.carts.Add(ctx, userID, productID)
}

// List returns a page of cart entries with their products resolved. Lines
// whose product has been removed from the catalog are dropped from the page.
func (u *CartUseCase) List(ctx context.Context, userID int64, page model.PageRequest) ([]CartEntry, int64, error) {
	page = page.Normalize(10)
	items, total, err := u.carts.List(ctx, userID, page)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return nil, total, nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := u.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	entries := make([]CartEntry, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		entries = append(entries, CartEntry{Product: product, AddedAt: item.AddedAt})
	}

	return entries, total, nil
}

// Remove deletes a product from the cart. Removing an absent line is a no-op.
func (u *CartUseCase) Remove(ctx context.Context, userID, productID int64) error {
	return u.carts.Remove(ctx, userID, productID)
}
