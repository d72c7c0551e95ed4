package app

import (
	"context"

	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
	"github.com/vdeep/craftmart/internal/usecase"
)

// ShopFacade bundles the use cases behind one surface for the HTTP layer.
type ShopFacade struct {
	auth     *usecase.AuthUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrdersUseCase
	decision *usecase.DecisionUseCase
	cart     *usecase.CartUseCase
	catalog  *usecase.CatalogUseCase
	subs     repository.SubscriptionRepository
}

// NewShopFacade constructs ShopFacade.
func NewShopFacade(
	auth *usecase.AuthUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrdersUseCase,
	decision *usecase.DecisionUseCase,
	cart *usecase.CartUseCase,
	catalog *usecase.CatalogUseCase,
	subs repository.SubscriptionRepository,
) *ShopFacade {
	return &ShopFacade{
		auth:     auth,
		checkout: checkout,
		orders:   orders,
		decision: decision,
		cart:     cart,
		catalog:  catalog,
		subs:     subs,
	}
}

func (f *ShopFacade) Register(ctx context.Context, name, email, phone, password string) (string, error) {
	return f.auth.Register(ctx, name, email, phone, password)
}

func (f *ShopFacade) VerifyOTP(ctx context.Context, pendingID, otp string) (string, error) {
	return f.auth.VerifyOTP(ctx, pendingID, otp)
}

func (f *ShopFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *ShopFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *ShopFacade) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetUser(ctx, id)
}

func (f *ShopFacade) Checkout(ctx context.Context, userID int64, in usecase.CheckoutInput) (*usecase.CheckoutResult, error) {
	return f.checkout.Submit(ctx, userID, in)
}

func (f *ShopFacade) Orders(ctx context.Context, userID int64, page model.PageRequest) ([]model.Order, int64, error) {
	return f.orders.ListByUser(ctx, userID, page)
}

func (f *ShopFacade) AllOrders(ctx context.Context, page model.PageRequest) ([]model.Order, int64, error) {
	return f.orders.ListAll(ctx, page)
}

func (f *ShopFacade) DownloadCheck(ctx context.Context, userID, orderID int64) (*usecase.DownloadResult, error) {
	return f.orders.DownloadCheck(ctx, userID, orderID)
}

func (f *ShopFacade) ApproveOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.decision.Approve(ctx, orderID)
}

func (f *ShopFacade) RejectOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.decision.Reject(ctx, orderID)
}

func (f *ShopFacade) AddToCart(ctx context.Context, userID, productID int64) error {
	return f.cart.Add(ctx, userID, productID)
}

func (f *ShopFacade) Cart(ctx context.Context, userID int64, page model.PageRequest) ([]usecase.CartEntry, int64, error) {
	return f.cart.List(ctx, userID, page)
}

func (f *ShopFacade) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	return f.cart.Remove(ctx, userID, productID)
}

func (f *ShopFacade) Products(ctx context.Context, filter repository.ProductFilter, page model.PageRequest) ([]model.Product, int64, error) {
	return f.catalog.List(ctx, filter, page)
}

func (f *ShopFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *ShopFacade) CreateProduct(ctx context.Context, draft usecase.ProductDraft, thumbnail, source usecase.FileUpload) (*model.Product, error) {
	return f.catalog.Create(ctx, draft, thumbnail, source)
}

func (f *ShopFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.Delete(ctx, id)
}

func (f *ShopFacade) AddReview(ctx context.Context, userID, productID int64, rating int, comment string) error {
	return f.catalog.AddReview(ctx, userID, productID, rating, comment)
}

func (f *ShopFacade) SaveSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return f.subs.Upsert(ctx, sub)
}
