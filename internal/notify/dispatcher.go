package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
)

// ErrEndpointGone marks a push endpoint the push service has forgotten.
// Deliveries that fail with it cause the subscription to be pruned.
var ErrEndpointGone = errors.New("push endpoint gone")

// PushSender delivers one payload to one subscription endpoint.
type PushSender interface {
	Send(ctx context.Context, sub model.PushSubscription, payload []byte) error
}

// Mailer sends the per-order admin alert mail.
type Mailer interface {
	SendOrderAlert(ctx context.Context, order model.Order, productTitle string) error
}

// PushPayload is the JSON body handed to the service worker.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Dispatcher fans out notification events to mail and push transports on a
// background worker pool. Publish never blocks business flow and delivery
// failures never surface to it.
type Dispatcher struct {
	subs    repository.SubscriptionRepository
	push    PushSender
	mailer  Mailer
	workers int
	logger  *slog.Logger

	events chan Event
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs the dispatcher with a bounded event queue.
func NewDispatcher(subs repository.SubscriptionRepository, push PushSender, mailer Mailer, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		subs:    subs,
		push:    push,
		mailer:  mailer,
		workers: workers,
		logger:  logger,
		events:  make(chan Event, queueSize),
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop waits for in-flight deliveries to finish. Queued events that no worker
// picked up yet are dropped; notifications are best effort.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Publish enqueues an event. A full queue drops the event rather than stall
// the caller.
func (d *Dispatcher) Publish(event Event) {
	select {
	case d.events <- event:
	default:
		d.logger.Warn("notification queue full, event dropped",
			slog.String("event", fmt.Sprintf("%T", event)))
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.events:
			if !ok {
				return
			}
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event Event) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch e := event.(type) {
	case OrderPlaced:
		if err := d.mailer.SendOrderAlert(ctx, e.Order, e.ProductTitle); err != nil {
			d.logger.Error("order alert mail failed",
				slog.Int64("order_id", e.Order.ID),
				slog.String("error", err.Error()))
		}
	case OrdersPlaced:
		d.pushToRole(ctx, model.RoleAdmin, PushPayload{
			Title: "New Order Received",
			Body:  fmt.Sprintf("Order from %s for ₹%v (%d items)", e.CustomerName, e.Total, e.Count),
			URL:   "/admin",
		})
	case OrderApproved:
		d.pushToUser(ctx, e.UserID, PushPayload{
			Title: "Order Approved",
			Body:  "Your order has been approved! Click to download.",
			URL:   fmt.Sprintf("/product/%d", e.ProductID),
		})
	case OrderRejected:
		d.pushToUser(ctx, e.UserID, PushPayload{
			Title: "Order Rejected",
			Body:  "Your order was not approved. Please contact support.",
			URL:   "/cart",
		})
	default:
		d.logger.Warn("unknown notification event", slog.String("event", fmt.Sprintf("%T", event)))
	}
}

func (d *Dispatcher) pushToRole(ctx context.Context, role model.SubscriberRole, payload PushPayload) {
	subs, err := d.subs.ListByRole(ctx, role)
	if err != nil {
		d.logger.Error("list subscriptions failed", slog.String("error", err.Error()))
		return
	}
	d.pushAll(ctx, subs, payload)
}

func (d *Dispatcher) pushToUser(ctx context.Context, userID int64, payload PushPayload) {
	subs, err := d.subs.ListByUser(ctx, userID)
	if err != nil {
		d.logger.Error("list subscriptions failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return
	}
	d.pushAll(ctx, subs, payload)
}

func (d *Dispatcher) pushAll(ctx context.Context, subs []model.PushSubscription, payload PushPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		d.logger.Error("marshal push payload failed", slog.String("error", err.Error()))
		return
	}

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub model.PushSubscription) {
			defer wg.Done()
			err := d.push.Send(ctx, sub, body)
			switch {
			case err == nil:
			case errors.Is(err, ErrEndpointGone):
				if err := d.subs.DeleteByEndpoint(ctx, sub.Endpoint); err != nil {
					d.logger.Error("prune dead subscription failed",
						slog.String("endpoint", sub.Endpoint),
						slog.String("error", err.Error()))
				}
			default:
				d.logger.Error("push delivery failed",
					slog.String("endpoint", sub.Endpoint),
					slog.String("error", err.Error()))
			}
		}(sub)
	}
	wg.Wait()
}
