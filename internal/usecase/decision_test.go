package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/notify"
)

func TestDecisionApprove(t *testing.T) {
	orders := newOrderRepoStub()
	events := &notifierStub{}
	uc := NewDecisionUseCase(orders, events)

	id := orders.seed(model.Order{UserID: 7, ProductID: 3, Status: model.OrderStatusPending, CreatedAt: time.Now()})

	order, err := uc.Approve(context.Background(), id)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if order.Status != model.OrderStatusApproved {
		t.Fatalf("status = %q, want Approved", order.Status)
	}
	if order.ApprovedAt == nil {
		t.Fatal("approval timestamp not stamped")
	}

	published := events.published()
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	approved, ok := published[0].(notify.OrderApproved)
	if !ok {
		t.Fatalf("event = %T, want OrderApproved", published[0])
	}
	if approved.UserID != 7 || approved.ProductID != 3 {
		t.Fatalf("event = %+v", approved)
	}
}

func TestDecisionApprove_RefreshRestampsTimestamp(t *testing.T) {
	orders := newOrderRepoStub()
	uc := NewDecisionUseCase(orders, &notifierStub{})

	old := time.Now().Add(-100 * time.Hour)
	id := orders.seed(model.Order{UserID: 7, ProductID: 3, Status: model.OrderStatusApproved, CreatedAt: old, ApprovedAt: &old})

	order, err := uc.Approve(context.Background(), id)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !order.ApprovedAt.After(old) {
		t.Fatalf("approval timestamp not refreshed: %v", order.ApprovedAt)
	}
}

func TestDecisionApprove_RejectedIsImmutable(t *testing.T) {
	orders := newOrderRepoStub()
	events := &notifierStub{}
	uc := NewDecisionUseCase(orders, events)

	id := orders.seed(model.Order{UserID: 7, ProductID: 3, Status: model.OrderStatusRejected, CreatedAt: time.Now()})

	if _, err := uc.Approve(context.Background(), id); !errors.Is(err, domainErrors.ErrOrderImmutable) {
		t.Fatalf("err = %v, want ErrOrderImmutable", err)
	}
	if published := events.published(); len(published) != 0 {
		t.Fatalf("published %d events for an immutable order", len(published))
	}
}

func TestDecisionApprove_MissingOrder(t *testing.T) {
	uc := NewDecisionUseCase(newOrderRepoStub(), &notifierStub{})

	if _, err := uc.Approve(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDecisionReject(t *testing.T) {
	orders := newOrderRepoStub()
	events := &notifierStub{}
	uc := NewDecisionUseCase(orders, events)

	id := orders.seed(model.Order{UserID: 7, ProductID: 3, Status: model.OrderStatusPending, CreatedAt: time.Now()})

	order, err := uc.Reject(context.Background(), id)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if order.Status != model.OrderStatusRejected {
		t.Fatalf("status = %q, want Rejected", order.Status)
	}

	published := events.published()
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	if rejected, ok := published[0].(notify.OrderRejected); !ok || rejected.UserID != 7 {
		t.Fatalf("event = %#v, want OrderRejected for user 7", published[0])
	}
}

func TestDecisionReject_KeepsApprovalTimestamp(t *testing.T) {
	orders := newOrderRepoStub()
	uc := NewDecisionUseCase(orders, &notifierStub{})

	approvedAt := time.Now().Add(-time.Hour)
	id := orders.seed(model.Order{UserID: 7, ProductID: 3, Status: model.OrderStatusApproved, CreatedAt: time.Now(), ApprovedAt: &approvedAt})

	order, err := uc.Reject(context.Background(), id)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if order.Status != model.OrderStatusRejected {
		t.Fatalf("status = %q, want Rejected", order.Status)
	}
	if order.ApprovedAt == nil || !order.ApprovedAt.Equal(approvedAt) {
		t.Fatalf("approval timestamp = %v, want preserved %v", order.ApprovedAt, approvedAt)
	}
}

func TestDecisionReject_RepeatIsIdempotent(t *testing.T) {
	orders := newOrderRepoStub()
	uc := NewDecisionUseCase(orders, &notifierStub{})

	id := orders.seed(model.Order{UserID: 7, ProductID: 3, Status: model.OrderStatusRejected, CreatedAt: time.Now()})

	order, err := uc.Reject(context.Background(), id)
	if err != nil {
		t.Fatalf("repeat Reject: %v", err)
	}
	if order.Status != model.OrderStatusRejected {
		t.Fatalf("status = %q, want Rejected", order.Status)
	}
}

func TestDecision_GuestOrdersPublishNothing(t *testing.T) {
	orders := newOrderRepoStub()
	events := &notifierStub{}
	uc := NewDecisionUseCase(orders, events)

	id := orders.seed(model.Order{UserID: 0, ProductID: 3, Status: model.OrderStatusPending, CreatedAt: time.Now()})

	if _, err := uc.Approve(context.Background(), id); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if published := events.published(); len(published) != 0 {
		t.Fatalf("published %d events for a guest order", len(published))
	}
}
