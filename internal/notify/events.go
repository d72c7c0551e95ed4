package notify

import "github.com/vdeep/craftmart/internal/domain/model"

// Event is a notification trigger consumed by the Dispatcher. Publishing one
// is fire-and-forget; no event outcome ever reaches the publisher.
type Event interface {
	isEvent()
}

// OrderPlaced fires once per created order and drives the per-order admin
// email.
type OrderPlaced struct {
	Order        model.Order
	ProductTitle string
}

// OrdersPlaced fires once per checkout batch and drives the aggregate admin
// push notification.
type OrdersPlaced struct {
	CustomerName string
	Total        float64
	Count        int
}

// OrderApproved notifies the buyer that the download is ready.
type OrderApproved struct {
	UserID    int64
	ProductID int64
}

// OrderRejected notifies the buyer that payment evidence was not accepted.
type OrderRejected struct {
	UserID int64
}

func (OrderPlaced) isEvent()   {}
func (OrdersPlaced) isEvent()  {}
func (OrderApproved) isEvent() {}
func (OrderRejected) isEvent() {}
