package notify

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/vdeep/craftmart/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type stubSubscriptionRepo struct {
	mu      sync.Mutex
	byRole  map[model.SubscriberRole][]model.PushSubscription
	byUser  map[int64][]model.PushSubscription
	deleted []string
}

func (s *stubSubscriptionRepo) Upsert(ctx context.Context, sub *model.PushSubscription) error {
	return nil
}

func (s *stubSubscriptionRepo) ListByRole(ctx context.Context, role model.SubscriberRole) ([]model.PushSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byRole[role], nil
}

func (s *stubSubscriptionRepo) ListByUser(ctx context.Context, userID int64) ([]model.PushSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byUser[userID], nil
}

func (s *stubSubscriptionRepo) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, endpoint)
	return nil
}

type stubPushSender struct {
	mu       sync.Mutex
	sent     []string
	failWith map[string]error
	done     chan struct{}
}

func (s *stubPushSender) Send(ctx context.Context, sub model.PushSubscription, payload []byte) error {
	s.mu.Lock()
	s.sent = append(s.sent, sub.Endpoint)
	err := s.failWith[sub.Endpoint]
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
	return err
}

type stubMailer struct {
	mu     sync.Mutex
	orders []int64
	err    error
	done   chan struct{}
}

func (m *stubMailer) SendOrderAlert(ctx context.Context, order model.Order, productTitle string) error {
	m.mu.Lock()
	m.orders = append(m.orders, order.ID)
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	return m.err
}

func waitSignal(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestDispatcherOrderPlacedSendsMail(t *testing.T) {
	subs := &stubSubscriptionRepo{}
	push := &stubPushSender{}
	mail := &stubMailer{done: make(chan struct{}, 1)}

	d := NewDispatcher(subs, push, mail, 2, 8, testLogger())
	d.Start(context.Background())
	defer d.Stop()

	d.Publish(OrderPlaced{Order: model.Order{ID: 42, CustomerName: "Asha"}, ProductTitle: "Monoline Script"})
	waitSignal(t, mail.done)

	mail.mu.Lock()
	defer mail.mu.Unlock()
	if len(mail.orders) != 1 || mail.orders[0] != 42 {
		t.Fatalf("unexpected mail deliveries: %v", mail.orders)
	}
}

func TestDispatcherOrdersPlacedPushesToAdmins(t *testing.T) {
	subs := &stubSubscriptionRepo{
		byRole: map[model.SubscriberRole][]model.PushSubscription{
			model.RoleAdmin: {
				{Endpoint: "https://push/a1", Role: model.RoleAdmin},
				{Endpoint: "https://push/a2", Role: model.RoleAdmin},
			},
		},
	}
	push := &stubPushSender{done: make(chan struct{}, 2)}
	mail := &stubMailer{}

	d := NewDispatcher(subs, push, mail, 1, 8, testLogger())
	d.Start(context.Background())
	defer d.Stop()

	d.Publish(OrdersPlaced{CustomerName: "Asha", Total: 998, Count: 2})
	waitSignal(t, push.done)
	waitSignal(t, push.done)

	push.mu.Lock()
	defer push.mu.Unlock()
	if len(push.sent) != 2 {
		t.Fatalf("expected 2 pushes, got %v", push.sent)
	}
}

func TestDispatcherApprovedPushesToUser(t *testing.T) {
	subs := &stubSubscriptionRepo{
		byUser: map[int64][]model.PushSubscription{
			7: {{Endpoint: "https://push/u7", UserID: 7, Role: model.RoleUser}},
		},
	}
	push := &stubPushSender{done: make(chan struct{}, 1)}
	mail := &stubMailer{}

	d := NewDispatcher(subs, push, mail, 1, 8, testLogger())
	d.Start(context.Background())
	defer d.Stop()

	d.Publish(OrderApproved{UserID: 7, ProductID: 3})
	waitSignal(t, push.done)

	push.mu.Lock()
	defer push.mu.Unlock()
	if len(push.sent) != 1 || push.sent[0] != "https://push/u7" {
		t.Fatalf("unexpected pushes: %v", push.sent)
	}
}

func TestDispatcherPrunesGoneEndpoints(t *testing.T) {
	subs := &stubSubscriptionRepo{
		byUser: map[int64][]model.PushSubscription{
			7: {{Endpoint: "https://push/dead", UserID: 7, Role: model.RoleUser}},
		},
	}
	push := &stubPushSender{
		done:     make(chan struct{}, 1),
		failWith: map[string]error{"https://push/dead": ErrEndpointGone},
	}
	mail := &stubMailer{}

	d := NewDispatcher(subs, push, mail, 1, 8, testLogger())
	d.Start(context.Background())

	d.Publish(OrderRejected{UserID: 7})
	waitSignal(t, push.done)
	d.Stop()

	subs.mu.Lock()
	defer subs.mu.Unlock()
	if len(subs.deleted) != 1 || subs.deleted[0] != "https://push/dead" {
		t.Fatalf("expected dead endpoint pruned, got %v", subs.deleted)
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	subs := &stubSubscriptionRepo{}
	push := &stubPushSender{}
	mail := &stubMailer{}

	// Never started, so the queue only drains by capacity.
	d := NewDispatcher(subs, push, mail, 1, 1, testLogger())

	d.Publish(OrderRejected{UserID: 1})
	d.Publish(OrderRejected{UserID: 2}) // dropped, must not block
}

func TestDispatcherStopIsIdempotent(t *testing.T) {
	d := NewDispatcher(&stubSubscriptionRepo{}, &stubPushSender{}, &stubMailer{}, 2, 4, testLogger())
	d.Start(context.Background())
	d.Stop()
	d.Stop()
}
