package usecase

import (
	"context"
	"time"

	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
	"github.com/vdeep/craftmart/internal/notify"
)

// DecisionUseCase applies admin Approve/Reject decisions to orders.
type DecisionUseCase struct {
	orders repository.OrderRepository
	events Notifier
}

// NewDecisionUseCase constructs DecisionUseCase.
func NewDecisionUseCase(orders repository.OrderRepository, events Notifier) *DecisionUseCase {
	return &DecisionUseCase{orders: orders, events: events}
}

// Approve moves a Pending or Approved order to Approved, stamping the
// approval time. Approving an already-Approved order is not an error: it
// refreshes the approval timestamp, which restarts both access windows.
// A Rejected order cannot be approved.
func (u *DecisionUseCase) Approve(ctx context.Context, orderID int64) (*model.Order, error) {
	now := time.Now()
	order, err := u.orders.SetStatus(ctx, orderID, model.OrderStatusApproved, &now)
	if err != nil {
		return nil, err
	}

	if order.UserID != 0 {
		u.events.Publish(notify.OrderApproved{UserID: order.UserID, ProductID: order.ProductID})
	}

	return order, nil
}

// Reject moves an order to Rejected. Rejecting an Approved order is allowed;
// the existing approval timestamp stays in place for the audit trail.
func (u *DecisionUseCase) Reject(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := u.orders.SetStatus(ctx, orderID, model.OrderStatusRejected, nil)
	if err != nil {
		return nil, err
	}

	if order.UserID != 0 {
		u.events.Publish(notify.OrderRejected{UserID: order.UserID})
	}

	return order, nil
}
