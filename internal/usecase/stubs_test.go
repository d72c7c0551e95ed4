package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
	"github.com/vdeep/craftmart/internal/notify"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type orderRepoStub struct {
	mu     sync.Mutex
	orders map[int64]*model.Order
	next   int64
	err    error
}

func newOrderRepoStub() *orderRepoStub {
	return &orderRepoStub{orders: make(map[int64]*model.Order), next: 1}
}

func (s *orderRepoStub) seed(order model.Order) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == 0 {
		order.ID = s.next
	}
	if order.ID >= s.next {
		s.next = order.ID + 1
	}
	s.orders[order.ID] = &order
	return order.ID
}

func (s *orderRepoStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, existing := range s.orders {
		if existing.UserID == order.UserID && existing.ProductID == order.ProductID && existing.Status == model.OrderStatusPending {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	stored := *order
	stored.ID = s.next
	stored.Status = model.OrderStatusPending
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.next++
	s.orders[stored.ID] = &stored
	return &stored, nil
}

func (s *orderRepoStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.orders[id]; ok {
		cloned := *order
		return &cloned, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *orderRepoStub) LatestByUserProduct(ctx context.Context, userID, productID int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *model.Order
	for _, order := range s.orders {
		if order.UserID != userID || order.ProductID != productID {
			continue
		}
		if latest == nil || order.CreatedAt.After(latest.CreatedAt) {
			latest = order
		}
	}
	if latest == nil {
		return nil, domainErrors.ErrNotFound
	}
	cloned := *latest
	return &cloned, nil
}

func (s *orderRepoStub) ListByUser(ctx context.Context, userID int64, page model.PageRequest) ([]model.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var mine []model.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			mine = append(mine, *order)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	return mine, int64(len(mine)), nil
}

func (s *orderRepoStub) ListAll(ctx context.Context, page model.PageRequest) ([]model.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.Order
	for _, order := range s.orders {
		all = append(all, *order)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, int64(len(all)), nil
}

func (s *orderRepoStub) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus, approvedAt *time.Time) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status == model.OrderStatusRejected {
		if status == model.OrderStatusRejected {
			cloned := *order
			return &cloned, nil
		}
		return nil, domainErrors.ErrOrderImmutable
	}
	order.Status = status
	if approvedAt != nil {
		order.ApprovedAt = approvedAt
	}
	cloned := *order
	return &cloned, nil
}

func (s *orderRepoStub) HasApproved(ctx context.Context, userID, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.UserID == userID && order.ProductID == productID && order.Status == model.OrderStatusApproved {
			return true, nil
		}
	}
	return false, nil
}

type productRepoStub struct {
	products map[int64]*model.Product
	reviews  map[int64][]model.Review
	next     int64
}

func newProductRepoStub() *productRepoStub {
	return &productRepoStub{
		products: make(map[int64]*model.Product),
		reviews:  make(map[int64][]model.Review),
		next:     1,
	}
}

func (s *productRepoStub) seed(product model.Product) int64 {
	if product.ID == 0 {
		product.ID = s.next
	}
	if product.ID >= s.next {
		s.next = product.ID + 1
	}
	s.products[product.ID] = &product
	return product.ID
}

func (s *productRepoStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	stored := *product
	stored.ID = s.next
	stored.CreatedAt = time.Now()
	s.next++
	s.products[stored.ID] = &stored
	return &stored, nil
}

func (s *productRepoStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if product, ok := s.products[id]; ok {
		cloned := *product
		return &cloned, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *productRepoStub) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	var result []model.Product
	for _, id := range ids {
		if product, ok := s.products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (s *productRepoStub) List(ctx context.Context, filter repository.ProductFilter, page model.PageRequest) ([]model.Product, int64, error) {
	var all []model.Product
	for _, product := range s.products {
		all = append(all, *product)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, int64(len(all)), nil
}

func (s *productRepoStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *productRepoStub) AddReview(ctx context.Context, review *model.Review) error {
	for _, existing := range s.reviews[review.ProductID] {
		if existing.UserID == review.UserID {
			return domainErrors.ErrAlreadyReviewed
		}
	}
	s.reviews[review.ProductID] = append(s.reviews[review.ProductID], *review)
	return nil
}

func (s *productRepoStub) HasReview(ctx context.Context, productID, userID int64) (bool, error) {
	for _, review := range s.reviews[productID] {
		if review.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type userRepoStub struct {
	byEmail map[string]*model.User
	byID    map[int64]*model.User
	next    int64
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{
		byEmail: make(map[string]*model.User),
		byID:    make(map[int64]*model.User),
		next:    1,
	}
}

func (s *userRepoStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if _, exists := s.byEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	stored.ID = s.next
	s.next++
	s.byEmail[stored.Email] = &stored
	s.byID[stored.ID] = &stored
	return &stored, nil
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *userRepoStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

type cartRepoStub struct {
	items map[int64][]model.CartItem
}

func newCartRepoStub() *cartRepoStub {
	return &cartRepoStub{items: make(map[int64][]model.CartItem)}
}

func (s *cartRepoStub) Add(ctx context.Context, userID, productID int64) error {
	for _, item := range s.items[userID] {
		if item.ProductID == productID {
			return domainErrors.ErrAlreadyInCart
		}
	}
	s.items[userID] = append(s.items[userID], model.CartItem{ProductID: productID, AddedAt: time.Now()})
	return nil
}

func (s *cartRepoStub) List(ctx context.Context, userID int64, page model.PageRequest) ([]model.CartItem, int64, error) {
	items := s.items[userID]
	return items, int64(len(items)), nil
}

func (s *cartRepoStub) Remove(ctx context.Context, userID, productID int64) error {
	items := s.items[userID]
	for i, item := range items {
		if item.ProductID == productID {
			s.items[userID] = append(items[:i], items[i+1:]...)
			break
		}
	}
	return nil
}

type notifierStub struct {
	mu     sync.Mutex
	events []notify.Event
}

func (s *notifierStub) Publish(event notify.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *notifierStub) published() []notify.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Event, len(s.events))
	copy(out, s.events)
	return out
}

type lockerStub struct {
	mu       sync.Mutex
	held     map[[2]int64]bool
	err      error
	acquired [][2]int64
}

func (s *lockerStub) Acquire(ctx context.Context, userID, productID int64) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	pair := [2]int64{userID, productID}
	if s.held[pair] {
		return nil, fmt.Errorf("%w: user %d product %d", ErrLockHeld, userID, productID)
	}
	s.acquired = append(s.acquired, pair)
	return func() {}, nil
}

type uploaderStub struct {
	uploads []FileUpload
	err     error
}

func (s *uploaderStub) Upload(ctx context.Context, file FileUpload) (model.StoredFile, error) {
	if s.err != nil {
		return model.StoredFile{}, s.err
	}
	s.uploads = append(s.uploads, file)
	return model.StoredFile{
		OriginalName: file.Name,
		MimeType:     file.MimeType,
		Size:         int64(len(file.Data)),
		Ref:          "ref-" + file.Name,
		ViewLink:     "https://drive.test/view/" + file.Name,
		DownloadLink: "https://drive.test/dl/" + file.Name,
	}, nil
}

type pendingStoreStub struct {
	entries map[string]*model.PendingSignup
	putErr  error
}

func newPendingStoreStub() *pendingStoreStub {
	return &pendingStoreStub{entries: make(map[string]*model.PendingSignup)}
}

func (s *pendingStoreStub) Put(ctx context.Context, signup *model.PendingSignup) error {
	if s.putErr != nil {
		return s.putErr
	}
	cloned := *signup
	s.entries[signup.ID] = &cloned
	return nil
}

func (s *pendingStoreStub) Get(ctx context.Context, id string) (*model.PendingSignup, error) {
	if signup, ok := s.entries[id]; ok {
		cloned := *signup
		return &cloned, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *pendingStoreStub) Delete(ctx context.Context, id string) error {
	delete(s.entries, id)
	return nil
}

type otpSenderStub struct {
	sent map[string]string
	err  error
}

func (s *otpSenderStub) SendOTP(ctx context.Context, email, otp string) error {
	if s.err != nil {
		return s.err
	}
	if s.sent == nil {
		s.sent = make(map[string]string)
	}
	s.sent[email] = otp
	return nil
}
