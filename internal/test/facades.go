package test

import (
	"context"

	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
	"github.com/vdeep/craftmart/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, string) (string, error)
	VerifyFn       func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
}

// Register returns the pending id for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, name, email, phone, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, phone, password)
	}
	return "pending-1", nil
}

// VerifyOTP returns a token for successful verification scenarios.
func (s AuthFacadeStub) VerifyOTP(ctx context.Context, pendingID, otp string) (string, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, pendingID, otp)
	}
	return "token", nil
}

// Authenticate returns a token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns the stored identifier for the authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CheckoutFn func(context.Context, int64, usecase.CheckoutInput) (*usecase.CheckoutResult, error)
	OrdersFn   func(context.Context, int64, model.PageRequest) ([]model.Order, int64, error)
	DownloadFn func(context.Context, int64, int64) (*usecase.DownloadResult, error)
}

// Checkout delegates to the provided function or creates one default order.
func (s OrderFacadeStub) Checkout(ctx context.Context, userID int64, in usecase.CheckoutInput) (*usecase.CheckoutResult, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, in)
	}
	return &usecase.CheckoutResult{OrderIDs: []int64{1}}, nil
}

// Orders returns predefined orders for the given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, page model.PageRequest) ([]model.Order, int64, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, page)
	}
	return []model.Order{{ID: 1, UserID: userID, Status: model.OrderStatusPending}}, 1, nil
}

// DownloadCheck reports allowed access by default.
func (s OrderFacadeStub) DownloadCheck(ctx context.Context, userID, orderID int64) (*usecase.DownloadResult, error) {
	if s.DownloadFn != nil {
		return s.DownloadFn(ctx, userID, orderID)
	}
	return &usecase.DownloadResult{Status: model.OrderStatusApproved, DownloadLink: "https://drive.test/dl/1"}, nil
}

// CatalogFacadeStub serves catalog endpoints in tests.
type CatalogFacadeStub struct {
	ProductsFn  func(context.Context, repository.ProductFilter, model.PageRequest) ([]model.Product, int64, error)
	ProductFn   func(context.Context, int64) (*model.Product, error)
	AddReviewFn func(context.Context, int64, int64, int, string) error
}

// Products returns a single-product page by default.
func (s CatalogFacadeStub) Products(ctx context.Context, filter repository.ProductFilter, page model.PageRequest) ([]model.Product, int64, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter, page)
	}
	return []model.Product{{ID: 1, Title: "Monoline Script", Price: 499}}, 1, nil
}

// Product returns a fixed product by default.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Title: "Monoline Script", Price: 499}, nil
}

// AddReview accepts every review by default.
func (s CatalogFacadeStub) AddReview(ctx context.Context, userID, productID int64, rating int, comment string) error {
	if s.AddReviewFn != nil {
		return s.AddReviewFn(ctx, userID, productID, rating, comment)
	}
	return nil
}

// CartFacadeStub serves cart endpoints in tests.
type CartFacadeStub struct {
	AddFn    func(context.Context, int64, int64) error
	CartFn   func(context.Context, int64, model.PageRequest) ([]usecase.CartEntry, int64, error)
	RemoveFn func(context.Context, int64, int64) error
}

// AddToCart accepts every addition by default.
func (s CartFacadeStub) AddToCart(ctx context.Context, userID, productID int64) error {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID)
	}
	return nil
}

// Cart returns an empty page by default.
func (s CartFacadeStub) Cart(ctx context.Context, userID int64, page model.PageRequest) ([]usecase.CartEntry, int64, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID, page)
	}
	return nil, 0, nil
}

// RemoveFromCart accepts every removal by default.
func (s CartFacadeStub) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, productID)
	}
	return nil
}

// AdminFacadeStub serves admin endpoints in tests.
type AdminFacadeStub struct {
	AllOrdersFn     func(context.Context, model.PageRequest) ([]model.Order, int64, error)
	ApproveFn       func(context.Context, int64) (*model.Order, error)
	RejectFn        func(context.Context, int64) (*model.Order, error)
	CreateProductFn func(context.Context, usecase.ProductDraft, usecase.FileUpload, usecase.FileUpload) (*model.Product, error)
	DeleteProductFn func(context.Context, int64) error
}

// AllOrders returns a single-order page by default.
func (s AdminFacadeStub) AllOrders(ctx context.Context, page model.PageRequest) ([]model.Order, int64, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, page)
	}
	return []model.Order{{ID: 1, Status: model.OrderStatusPending}}, 1, nil
}

// ApproveOrder marks the order approved by default.
func (s AdminFacadeStub) ApproveOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusApproved}, nil
}

// RejectOrder marks the order rejected by default.
func (s AdminFacadeStub) RejectOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusRejected}, nil
}

// CreateProduct returns the stored draft by default.
func (s AdminFacadeStub) CreateProduct(ctx context.Context, draft usecase.ProductDraft, thumbnail, source usecase.FileUpload) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, draft, thumbnail, source)
	}
	return &model.Product{ID: 1, Title: draft.Title, Price: draft.Price}, nil
}

// DeleteProduct accepts every delete by default.
func (s AdminFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

// SubscriptionFacadeStub records saved push subscriptions.
type SubscriptionFacadeStub struct {
	SaveFn func(context.Context, *model.PushSubscription) error
	Saved  []model.PushSubscription
}

// SaveSubscription stores the subscription in-memory.
func (s *SubscriptionFacadeStub) SaveSubscription(ctx context.Context, sub *model.PushSubscription) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, sub)
	}
	s.Saved = append(s.Saved, *sub)
	return nil
}

// ShopFacadeStub aggregates facade stubs for HTTP layer tests.
type ShopFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	AdminFacadeStub
	*SubscriptionFacadeStub
}

// NewShopFacadeStub builds a stub with all defaults in place.
func NewShopFacadeStub() *ShopFacadeStub {
	return &ShopFacadeStub{SubscriptionFacadeStub: &SubscriptionFacadeStub{}}
}
