package repository

import (
	"context"

	"github.com/vdeep/craftmart/internal/domain/model"
)

// SubscriptionRepository keeps push endpoints per audience. Endpoints are
// unique; re-subscribing updates keys, owner, and role in place.
type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub *model.PushSubscription) error
	ListByRole(ctx context.Context, role model.SubscriberRole) ([]model.PushSubscription, error)
	ListByUser(ctx context.Context, userID int64) ([]model.PushSubscription, error)
	// DeleteByEndpoint drops a subscription whose transport reported it gone.
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}
