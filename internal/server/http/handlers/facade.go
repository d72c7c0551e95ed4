package handlers

import (
	"context"

	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
	"github.com/vdeep/craftmart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, phone, password string) (string, error)
	VerifyOTP(ctx context.Context, pendingID, otp string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, in usecase.CheckoutInput) (*usecase.CheckoutResult, error)
	Orders(ctx context.Context, userID int64, page model.PageRequest) ([]model.Order, int64, error)
	DownloadCheck(ctx context.Context, userID, orderID int64) (*usecase.DownloadResult, error)
}

// CatalogFacade serves the public product catalog and reviews.
type CatalogFacade interface {
	Products(ctx context.Context, filter repository.ProductFilter, page model.PageRequest) ([]model.Product, int64, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	AddReview(ctx context.Context, userID, productID int64, rating int, comment string) error
}

// CartFacade manages the user's product selection.
type CartFacade interface {
	AddToCart(ctx context.Context, userID, productID int64) error
	Cart(ctx context.Context, userID int64, page model.PageRequest) ([]usecase.CartEntry, int64, error)
	RemoveFromCart(ctx context.Context, userID, productID int64) error
}

// AdminFacade exposes the order decision queue and catalog management.
type AdminFacade interface {
	AllOrders(ctx context.Context, page model.PageRequest) ([]model.Order, int64, error)
	ApproveOrder(ctx context.Context, orderID int64) (*model.Order, error)
	RejectOrder(ctx context.Context, orderID int64) (*model.Order, error)
	CreateProduct(ctx context.Context, draft usecase.ProductDraft, thumbnail, source usecase.FileUpload) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// SubscriptionFacade stores web push subscriptions. Token parsing is part of
// the contract because the subscribe route authenticates inside the handler:
// admins present the shared password instead of a bearer token.
type SubscriptionFacade interface {
	SaveSubscription(ctx context.Context, sub *model.PushSubscription) error
	ParseToken(token string) (int64, error)
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	AuthFacade
	OrderFacade
	CatalogFacade
	CartFacade
	AdminFacade
	SubscriptionFacade
}
