package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	s.Next++
	s.ByEmail[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by id or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in-memory with the same uniqueness rules
// as the real storage.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[int64]*model.Order
	Next   int64
	Err    error
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Create inserts a Pending order, enforcing one live Pending per pair.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, existing := range s.Orders {
		if existing.UserID == order.UserID && existing.ProductID == order.ProductID && existing.Status == model.OrderStatusPending {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	stored := *order
	stored.ID = s.Next
	stored.Status = model.OrderStatusPending
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.Next++
	s.Orders[stored.ID] = &stored
	return &stored, nil
}

// GetByID fetches order by id or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		cloned := *order
		return &cloned, nil
	}
	return nil, domainErrors.ErrNotFound
}

// LatestByUserProduct returns the newest order for the pair.
func (s *OrderRepositoryStub) LatestByUserProduct(ctx context.Context, userID, productID int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var latest *model.Order
	for _, order := range s.Orders {
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

func (s *OrderRepositoryStub) sortedDesc() []model.Order {
	all := make([]model.Order, 0, len(s.Orders))
	for _, order := range s.Orders {
		all = append(all, *order)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all
}

// ListByUser pages the user's orders, newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64, page model.PageRequest) ([]model.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	var mine []model.Order
	for _, order := range s.sortedDesc() {
		if order.UserID == userID {
			mine = append(mine, order)
		}
	}
	return pageSlice(mine, page), int64(len(mine)), nil
}

// ListAll pages every order, newest first.
func (s *OrderRepositoryStub) ListAll(ctx context.Context, page model.PageRequest) ([]model.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	all := s.sortedDesc()
	return pageSlice(all, page), int64(len(all)), nil
}

// SetStatus applies a decision with the Rejected-is-terminal rule.
func (s *OrderRepositoryStub) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus, approvedAt *time.Time) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[orderID]
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

// HasApproved reports whether any approved order exists for the pair.
func (s *OrderRepositoryStub) HasApproved(ctx context.Context, userID, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, order := range s.Orders {
		if order.UserID == userID && order.ProductID == productID && order.Status == model.OrderStatusApproved {
			return true, nil
		}
	}
	return false, nil
}

// ProductRepositoryStub keeps products and reviews in-memory for tests.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Reviews  map[int64][]model.Review
	Next     int64
	Err      error
}

// NewProductRepositoryStub constructs stub repository with initialized maps.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{
		Products: make(map[int64]*model.Product),
		Reviews:  make(map[int64][]model.Review),
		Next:     1,
	}
}

// Add seeds a product and returns its id.
func (s *ProductRepositoryStub) Add(product model.Product) int64 {
	if product.ID == 0 {
		product.ID = s.Next
		s.Next++
	} else if product.ID >= s.Next {
		s.Next = product.ID + 1
	}
	s.Products[product.ID] = &product
	return product.ID
}

// Create stores a new product.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *product
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	s.Next++
	s.Products[stored.ID] = &stored
	return &stored, nil
}

// GetByID fetches product by id or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		cloned := *product
		return &cloned, nil
	}
	return nil, domainErrors.ErrNotFound
}

// FindByIDs resolves the subset of ids that exist.
func (s *ProductRepositoryStub) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Product
	for _, id := range ids {
		if product, ok := s.Products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

// List pages all products; search and sort are ignored by the stub.
func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter, page model.PageRequest) ([]model.Product, int64, error) {
	if s.Err != nil {
		return nil, 0, s.Err
	}
	all := make([]model.Product, 0, len(s.Products))
	for _, product := range s.Products {
		all = append(all, *product)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return pageSlice(all, page), int64(len(all)), nil
}

// Delete removes a product or returns not found.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

// AddReview appends a review, enforcing one per (product, user).
func (s *ProductRepositoryStub) AddReview(ctx context.Context, review *model.Review) error {
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.Reviews[review.ProductID] {
		if existing.UserID == review.UserID {
			return domainErrors.ErrAlreadyReviewed
		}
	}
	s.Reviews[review.ProductID] = append(s.Reviews[review.ProductID], *review)
	return nil
}

// HasReview reports whether the user reviewed the product.
func (s *ProductRepositoryStub) HasReview(ctx context.Context, productID, userID int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	for _, review := range s.Reviews[productID] {
		if review.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// CartRepositoryStub keeps cart lines in-memory for tests.
type CartRepositoryStub struct {
	Items map[int64][]model.CartItem
	Err   error
}

// NewCartRepositoryStub constructs stub repository with initialized maps.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Items: make(map[int64][]model.CartItem)}
}

// Add inserts a cart line, rejecting duplicates.
func (s *CartRepositoryStub) Add(ctx context.Context, userID, productID int64) error {
	if s.Err != nil {
		return s.Err
	}
	for _, item := range s.Items[userID] {
		if item.ProductID == productID {
			return domainErrors.ErrAlreadyInCart
		}
	}
	s.Items[userID] = append(s.Items[userID], model.CartItem{ProductID: productID, AddedAt: time.Now()})
	return nil
}

// List pages the user's cart lines.
func (s *CartRepositoryStub) List(ctx context.Context, userID int64, page model.PageRequest) ([]model.CartItem, int64, error) {
	if s.Err != nil {
		return nil, 0, s.Err
	}
	items := s.Items[userID]
	return pageSlice(items, page), int64(len(items)), nil
}

// Remove drops a cart line; absent lines are a no-op.
func (s *CartRepositoryStub) Remove(ctx context.Context, userID, productID int64) error {
	if s.Err != nil {
		return s.Err
	}
	items := s.Items[userID]
	for i, item := range items {
		if item.ProductID == productID {
			s.Items[userID] = append(items[:i], items[i+1:]...)
			break
		}
	}
	return nil
}

// SubscriptionRepositoryStub keeps push subscriptions in-memory for tests.
type SubscriptionRepositoryStub struct {
	Subs    []model.PushSubscription
	Deleted []string
	Err     error
}

// Upsert replaces a subscription by endpoint.
func (s *SubscriptionRepositoryStub) Upsert(ctx context.Context, sub *model.PushSubscription) error {
	if s.Err != nil {
		return s.Err
	}
	for i, existing := range s.Subs {
		if existing.Endpoint == sub.Endpoint {
			s.Subs[i] = *sub
			return nil
		}
	}
	s.Subs = append(s.Subs, *sub)
	return nil
}

// ListByRole filters subscriptions by role.
func (s *SubscriptionRepositoryStub) ListByRole(ctx context.Context, role model.SubscriberRole) ([]model.PushSubscription, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.PushSubscription
	for _, sub := range s.Subs {
		if sub.Role == role {
			result = append(result, sub)
		}
	}
	return result, nil
}

// ListByUser filters subscriptions by user.
func (s *SubscriptionRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.PushSubscription, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.PushSubscription
	for _, sub := range s.Subs {
		if sub.UserID == userID {
			result = append(result, sub)
		}
	}
	return result, nil
}

// DeleteByEndpoint records the pruned endpoint.
func (s *SubscriptionRepositoryStub) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Deleted = append(s.Deleted, endpoint)
	for i, sub := range s.Subs {
		if sub.Endpoint == endpoint {
			s.Subs = append(s.Subs[:i], s.Subs[i+1:]...)
			break
		}
	}
	return nil
}

func pageSlice[T any](items []T, page model.PageRequest) []T {
	offset := page.Offset()
	if offset >= len(items) {
		return nil
	}
	end := offset + page.Limit
	if page.Limit <= 0 || end > len(items) {
		end = len(items)
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}
