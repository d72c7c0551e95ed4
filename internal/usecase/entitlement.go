package usecase

import (
	"time"

	"github.com/vdeep/craftmart/internal/config"
	"github.com/vdeep/craftmart/internal/domain/model"
)

// DenyReason explains why the entitlement policy blocked an action.
type DenyReason string

const (
	DenyAlreadyPending DenyReason = "already pending"
	DenyOwnedActive    DenyReason = "already owned, not expired"
	DenyExpired        DenyReason = "expired"
)

// EntitlementPolicy holds the time windows that govern re-purchase and
// download access. Its methods are pure: the clock is always supplied by the
// caller, never read internally.
type EntitlementPolicy struct {
	RepurchaseWindow time.Duration
	DownloadWindow   time.Duration
}

// NewEntitlementPolicy builds the policy from configuration.
func NewEntitlementPolicy(cfg *config.Config) EntitlementPolicy {
	return EntitlementPolicy{
		RepurchaseWindow: cfg.RepurchaseWindow,
		DownloadWindow:   cfg.DownloadWindow,
	}
}

// PurchaseDecision is the outcome of a re-purchase eligibility check.
type PurchaseDecision struct {
	Allow  bool
	Reason DenyReason
}

// DownloadDecision is the outcome of a download access check. When the order
// is not Approved, Allow is false and Status carries the bare order status so
// a polling client can tell Pending from Rejected.
type DownloadDecision struct {
	Allow  bool
	Status model.OrderStatus
	Reason DenyReason
}

// CanPurchase decides whether a new order for a product is admissible given
// the user's latest order for it. A nil latest order, a Rejected one, or an
// Approved one older than the repurchase window all admit a new purchase.
func (p EntitlementPolicy) CanPurchase(latest *model.Order, now time.Time) PurchaseDecision {
	if latest == nil {
		return PurchaseDecision{Allow: true}
	}

	switch latest.Status {
	case model.OrderStatusPending:
		return PurchaseDecision{Reason: DenyAlreadyPending}
	case model.OrderStatusApproved:
		approvedAt := latest.CreatedAt
		if latest.ApprovedAt != nil {
			approvedAt = *latest.ApprovedAt
		}
		if now.Sub(approvedAt) <= p.RepurchaseWindow {
			return PurchaseDecision{Reason: DenyOwnedActive}
		}
		return PurchaseDecision{Allow: true}
	default:
		return PurchaseDecision{Allow: true}
	}
}

// CanDownload decides whether an approved order still grants download access.
// An Approved order without an approval timestamp is legacy data and is
// treated as never expiring.
func (p EntitlementPolicy) CanDownload(order *model.Order, now time.Time) DownloadDecision {
	if order.Status != model.OrderStatusApproved {
		return DownloadDecision{Status: order.Status}
	}

	if order.ApprovedAt != nil && now.Sub(*order.ApprovedAt) > p.DownloadWindow {
		return DownloadDecision{Status: order.Status, Reason: DenyExpired}
	}

	return DownloadDecision{Allow: true, Status: order.Status}
}
