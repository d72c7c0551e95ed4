package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
	"github.com/vdeep/craftmart/internal/notify"
)

// Notifier accepts events for asynchronous fan-out. Implementations must
// never block the caller on delivery.
type Notifier interface {
	Publish(event notify.Event)
}

// ErrLockHeld reports that another checkout already holds the per-pair lock.
var ErrLockHeld = errors.New("checkout lock held")

// CheckoutLocker serializes the check-then-insert section per (user, product)
// pair. Acquire fails with ErrLockHeld when the pair is taken; any other
// error is an infrastructure failure. Release must always be called, even
// when the section fails.
type CheckoutLocker interface {
	Acquire(ctx context.Context, userID, productID int64) (release func(), err error)
}

// FileUpload carries raw multipart file content toward blob storage.
type FileUpload struct {
	Name     string
	MimeType string
	Data     []byte
}

// BlobUploader pushes a file to external blob storage and returns its links.
type BlobUploader interface {
	Upload(ctx context.Context, file FileUpload) (model.StoredFile, error)
}

// CheckoutInput carries a purchase attempt for one or more products.
type CheckoutInput struct {
	ProductIDs   []int64
	CustomerName string
	PaymentRef   string
	Evidence     *FileUpload
}

// SkippedItem records a product the entitlement policy refused.
type SkippedItem struct {
	ProductID int64
	Reason    DenyReason
}

// CheckoutResult lists what a checkout actually created.
type CheckoutResult struct {
	OrderIDs []int64
	Skipped  []SkippedItem
}

// CheckoutUseCase turns a product selection into zero or more Pending orders,
// applying the entitlement policy per item.
type CheckoutUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	policy   EntitlementPolicy
	locks    CheckoutLocker
	uploader BlobUploader
	events   Notifier
	logger   *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	policy EntitlementPolicy,
	locks CheckoutLocker,
	uploader BlobUploader,
	events Notifier,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orders:   orders,
		products: products,
		policy:   policy,
		locks:    locks,
		uploader: uploader,
		events:   events,
		logger:   logger,
	}
}

// Submit resolves the requested products, admits each one independently
// through the entitlement policy, and creates a Pending order per admitted
// product with the current price snapshot. Denied items are skipped, not
// errors; a checkout where everything is skipped fails with
// ErrNothingPurchasable. Each order create is atomic on its own; the batch is
// not transactional.
func (u *CheckoutUseCase) Submit(ctx context.Context, userID int64, in CheckoutInput) (*CheckoutResult, error) {
	if userID == 0 || in.CustomerName == "" || in.PaymentRef == "" || len(in.ProductIDs) == 0 {
		return nil, domainErrors.ErrValidation
	}

	products, err := u.products.FindByIDs(ctx, in.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domainErrors.ErrNotFound
	}

	// Evidence goes to blob storage once and is shared by every order in the
	// batch. An upload failure aborts the whole checkout.
	var evidence *model.PaymentEvidence
	if in.Evidence != nil {
		stored, err := u.uploader.Upload(ctx, *in.Evidence)
		if err != nil {
			return nil, fmt.Errorf("upload payment evidence: %w", err)
		}
		evidence = &model.PaymentEvidence{
			Ref:          stored.Ref,
			ViewLink:     stored.ViewLink,
			DownloadLink: stored.DownloadLink,
			MimeType:     stored.MimeType,
		}
	}

	now := time.Now()
	result := &CheckoutResult{}
	var (
		created []model.Order
		titles  = make(map[int64]string, len(products))
		total   float64
	)

	for _, product := range products {
		titles[product.ID] = product.Title

		order, reason, err := u.admitAndCreate(ctx, userID, product, in, evidence, now)
		if err != nil {
			return nil, err
		}
		if order == nil {
			result.Skipped = append(result.Skipped, SkippedItem{ProductID: product.ID, Reason: reason})
			continue
		}

		created = append(created, *order)
		result.OrderIDs = append(result.OrderIDs, order.ID)
		total += order.Amount
	}

	if len(created) == 0 {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrNothingPurchasable, summarizeSkips(result.Skipped))
	}

	for _, order := range created {
		u.events.Publish(notify.OrderPlaced{Order: order, ProductTitle: titles[order.ProductID]})
	}
	u.events.Publish(notify.OrdersPlaced{
		CustomerName: in.CustomerName,
		Total:        total,
		Count:        len(created),
	})

	return result, nil
}

// admitAndCreate runs the policy check and the insert under the per-pair
// lock so concurrent checkouts cannot race past the check.
func (u *CheckoutUseCase) admitAndCreate(ctx context.Context, userID int64, product model.Product, in CheckoutInput, evidence *model.PaymentEvidence, now time.Time) (*model.Order, DenyReason, error) {
	release, err := u.locks.Acquire(ctx, userID, product.ID)
	if err != nil {
		if errors.Is(err, ErrLockHeld) {
			// Another checkout for the same pair is in flight right now;
			// treat the item like a pending duplicate.
			u.logger.Warn("checkout lock contended",
				slog.Int64("user_id", userID),
				slog.Int64("product_id", product.ID),
			)
			return nil, DenyAlreadyPending, nil
		}
		return nil, "", fmt.Errorf("acquire checkout lock: %w", err)
	}
	defer release()

	latest, err := u.orders.LatestByUserProduct(ctx, userID, product.ID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, "", err
	}

	decision := u.policy.CanPurchase(latest, now)
	if !decision.Allow {
		return nil, decision.Reason, nil
	}

	order := &model.Order{
		UserID:       userID,
		ProductID:    product.ID,
		CustomerName: in.CustomerName,
		PaymentRef:   in.PaymentRef,
		Amount:       product.Price,
		Evidence:     evidence,
		Status:       model.OrderStatusPending,
	}

	stored, err := u.orders.Create(ctx, order)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			// The partial unique index caught a duplicate Pending order that
			// slipped in; same outcome as a policy skip.
			return nil, DenyAlreadyPending, nil
		}
		return nil, "", err
	}

	return stored, "", nil
}

func summarizeSkips(skipped []SkippedItem) string {
	var pending, owned int
	for _, item := range skipped {
		switch item.Reason {
		case DenyAlreadyPending:
			pending++
		case DenyOwnedActive:
			owned++
		}
	}
	switch {
	case pending > 0 && owned > 0:
		return fmt.Sprintf("%d item(s) already pending, %d already owned and unexpired", pending, owned)
	case owned > 0:
		return fmt.Sprintf("%d item(s) already owned and unexpired", owned)
	default:
		return fmt.Sprintf("%d item(s) already pending", pending)
	}
}
