package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/notify"
	"github.com/vdeep/craftmart/internal/test"
	"github.com/vdeep/craftmart/internal/usecase"
)

type notifierStub struct {
	mu     sync.Mutex
	events []notify.Event
}

func (s *notifierStub) Publish(event notify.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *notifierStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type lockerStub struct{}

func (lockerStub) Acquire(ctx context.Context, userID, productID int64) (func(), error) {
	return func() {}, nil
}

type uploaderStub struct{}

func (uploaderStub) Upload(ctx context.Context, file usecase.FileUpload) (model.StoredFile, error) {
	return model.StoredFile{
		OriginalName: file.Name,
		Ref:          "ref-" + file.Name,
		ViewLink:     "https://drive.test/view/" + file.Name,
		DownloadLink: "https://drive.test/dl/" + file.Name,
	}, nil
}

type facadeFixture struct {
	facade   *ShopFacade
	users    *test.UserRepositoryStub
	orders   *test.OrderRepositoryStub
	products *test.ProductRepositoryStub
	otp      *test.OTPSenderStub
	events   *notifierStub
	subs     *test.SubscriptionRepositoryStub
}

func newFacadeFixture() *facadeFixture {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	policy := usecase.EntitlementPolicy{
		RepurchaseWindow: 7 * 24 * time.Hour,
		DownloadWindow:   72 * time.Hour,
	}

	users := test.NewUserRepositoryStub()
	orders := test.NewOrderRepositoryStub()
	products := test.NewProductRepositoryStub()
	carts := test.NewCartRepositoryStub()
	subs := &test.SubscriptionRepositoryStub{}
	otp := &test.OTPSenderStub{}
	events := &notifierStub{}
	uploader := uploaderStub{}

	auth := usecase.NewAuthUseCase(users, test.NewPendingSignupStoreStub(), test.HasherStub{}, test.StrategyStub{
		IssueFn: func(userID int64) (string, error) { return "token", nil },
	}, otp)
	checkout := usecase.NewCheckoutUseCase(orders, products, policy, lockerStub{}, uploader, events, logger)
	reads := usecase.NewOrdersUseCase(orders, products, policy)
	decision := usecase.NewDecisionUseCase(orders, events)
	cart := usecase.NewCartUseCase(carts, products)
	catalog := usecase.NewCatalogUseCase(products, orders, users, uploader)

	return &facadeFixture{
		facade:   NewShopFacade(auth, checkout, reads, decision, cart, catalog, subs),
		users:    users,
		orders:   orders,
		products: products,
		otp:      otp,
		events:   events,
		subs:     subs,
	}
}

func TestShopFacade_PurchaseLifecycle(t *testing.T) {
	fix := newFacadeFixture()
	ctx := context.Background()

	buyer, err := fix.users.Create(ctx, &model.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "hash:secret"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	productID := fix.products.Add(model.Product{
		Title:      "Monoline Script",
		Price:      499,
		SourceFile: model.StoredFile{DownloadLink: "https://drive.test/dl/source"},
	})

	result, err := fix.facade.Checkout(ctx, buyer.ID, usecase.CheckoutInput{
		ProductIDs:   []int64{productID},
		CustomerName: "Asha Verma",
		PaymentRef:   "UPI-42",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(result.OrderIDs) != 1 {
		t.Fatalf("created %d orders, want 1", len(result.OrderIDs))
	}
	orderID := result.OrderIDs[0]

	if fix.events.count() != 2 {
		t.Fatalf("published %d events, want OrderPlaced plus the batch aggregate", fix.events.count())
	}

	// Pending order: download not yet available, status handed back as-is.
	download, err := fix.facade.DownloadCheck(ctx, buyer.ID, orderID)
	if err != nil {
		t.Fatalf("DownloadCheck: %v", err)
	}
	if download.Status != model.OrderStatusPending || download.DownloadLink != "" {
		t.Fatalf("pending download = %+v", download)
	}

	// Reviews are gated until an approval exists.
	if err := fix.facade.AddReview(ctx, buyer.ID, productID, 5, "Lovely."); !errors.Is(err, domainErrors.ErrNotPurchased) {
		t.Fatalf("early review err = %v, want ErrNotPurchased", err)
	}

	// A second checkout for the same product is refused while one is pending.
	if _, err := fix.facade.Checkout(ctx, buyer.ID, usecase.CheckoutInput{
		ProductIDs:   []int64{productID},
		CustomerName: "Asha Verma",
		PaymentRef:   "UPI-43",
	}); !errors.Is(err, domainErrors.ErrNothingPurchasable) {
		t.Fatalf("repeat checkout err = %v, want ErrNothingPurchasable", err)
	}

	order, err := fix.facade.ApproveOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("ApproveOrder: %v", err)
	}
	if order.Status != model.OrderStatusApproved || order.ApprovedAt == nil {
		t.Fatalf("approved order = %+v", order)
	}

	download, err = fix.facade.DownloadCheck(ctx, buyer.ID, orderID)
	if err != nil {
		t.Fatalf("DownloadCheck after approval: %v", err)
	}
	if download.DownloadLink != "https://drive.test/dl/source" {
		t.Fatalf("download link = %q", download.DownloadLink)
	}

	if err := fix.facade.AddReview(ctx, buyer.ID, productID, 5, "Lovely."); err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if err := fix.facade.AddReview(ctx, buyer.ID, productID, 4, "Again."); !errors.Is(err, domainErrors.ErrAlreadyReviewed) {
		t.Fatalf("second review err = %v, want ErrAlreadyReviewed", err)
	}
}

func TestShopFacade_RejectIsTerminalForApproval(t *testing.T) {
	fix := newFacadeFixture()
	ctx := context.Background()

	productID := fix.products.Add(model.Product{Title: "Brush Set", Price: 299})
	result, err := fix.facade.Checkout(ctx, 7, usecase.CheckoutInput{
		ProductIDs:   []int64{productID},
		CustomerName: "Asha Verma",
		PaymentRef:   "UPI-42",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	orderID := result.OrderIDs[0]

	if _, err := fix.facade.RejectOrder(ctx, orderID); err != nil {
		t.Fatalf("RejectOrder: %v", err)
	}
	if _, err := fix.facade.ApproveOrder(ctx, orderID); !errors.Is(err, domainErrors.ErrOrderImmutable) {
		t.Fatalf("approve after reject err = %v, want ErrOrderImmutable", err)
	}

	// Rejection reopens the purchase path immediately.
	if _, err := fix.facade.Checkout(ctx, 7, usecase.CheckoutInput{
		ProductIDs:   []int64{productID},
		CustomerName: "Asha Verma",
		PaymentRef:   "UPI-44",
	}); err != nil {
		t.Fatalf("checkout after rejection: %v", err)
	}
}

func TestShopFacade_SaveSubscription(t *testing.T) {
	fix := newFacadeFixture()

	err := fix.facade.SaveSubscription(context.Background(), &model.PushSubscription{
		Endpoint: "https://push.example/ep",
		Role:     model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("SaveSubscription: %v", err)
	}
	if len(fix.subs.Subs) != 1 {
		t.Fatalf("stored %d subscriptions, want 1", len(fix.subs.Subs))
	}
}
