package usecase

import (
	"context"
	"time"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
)

// DownloadResult reports the outcome of a download access check. The link is
// only present when access is granted.
type DownloadResult struct {
	Status       model.OrderStatus
	DownloadLink string
}

// OrdersUseCase serves buyer- and admin-facing order reads.
type OrdersUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	policy   EntitlementPolicy
}

// NewOrdersUseCase constructs OrdersUseCase.
func NewOrdersUseCase(orders repository.OrderRepository, products repository.ProductRepository, policy EntitlementPolicy) *OrdersUseCase {
	return &OrdersUseCase{orders: orders, products: products, policy: policy}
}

// ListByUser returns the user's orders, newest first.
func (u *OrdersUseCase) ListByUser(ctx context.Context, userID int64, page model.PageRequest) ([]model.Order, int64, error) {
	return u.orders.ListByUser(ctx, userID, page.Normalize(9))
}

// ListAll returns every order for the admin dashboard, newest first.
func (u *OrdersUseCase) ListAll(ctx context.Context, page model.PageRequest) ([]model.Order, int64, error) {
	return u.orders.ListAll(ctx, page.Normalize(20))
}

// DownloadCheck consults the entitlement policy for a stored order. Only the
// order's owner may ask; orders without an owner are legacy records anyone
// authenticated may probe, matching their fail-open approval handling.
func (u *OrdersUseCase) DownloadCheck(ctx context.Context, userID, orderID int64) (*DownloadResult, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != 0 && order.UserID != userID {
		return nil, domainErrors.ErrNotOwner
	}

	product, err := u.products.GetByID(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}

	decision := u.policy.CanDownload(order, time.Now())
	if decision.Allow {
		return &DownloadResult{Status: order.Status, DownloadLink: product.SourceFile.DownloadLink}, nil
	}
	if decision.Reason == DenyExpired {
		return nil, domainErrors.ErrAccessExpired
	}

	// Pending or Rejected: hand the bare status back so polling clients can
	// tell the two apart.
	return &DownloadResult{Status: decision.Status}, nil
}
