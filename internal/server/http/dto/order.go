package dto

import (
	"time"

	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/usecase"
)

// OrderResponse is the wire shape of one order.
type OrderResponse struct {
	ID           int64      `json:"id"`
	ProductID    int64      `json:"product_id"`
	CustomerName string     `json:"customer_name"`
	PaymentRef   string     `json:"payment_ref"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"status"`
	Screenshot   string     `json:"screenshot,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
}

// NewOrderResponse maps a domain order to its wire shape.
func NewOrderResponse(order model.Order) OrderResponse {
	resp := OrderResponse{
		ID:           order.ID,
		ProductID:    order.ProductID,
		CustomerName: order.CustomerName,
		PaymentRef:   order.PaymentRef,
		Amount:       order.Amount,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
		ApprovedAt:   order.ApprovedAt,
	}
	if order.Evidence != nil {
		resp.Screenshot = order.Evidence.ViewLink
	}
	return resp
}

// OrderPageResponse is a paginated order listing.
type OrderPageResponse struct {
	Orders      []OrderResponse `json:"orders"`
	Total       int64           `json:"total"`
	TotalPages  int64           `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

// NewOrderPageResponse assembles a page of orders.
func NewOrderPageResponse(orders []model.Order, total int64, page model.PageRequest) OrderPageResponse {
	resp := OrderPageResponse{
		Orders:      make([]OrderResponse, 0, len(orders)),
		Total:       total,
		TotalPages:  page.TotalPages(total),
		CurrentPage: page.Page,
	}
	for _, order := range orders {
		resp.Orders = append(resp.Orders, NewOrderResponse(order))
	}
	return resp
}

// CheckoutResponse reports what a checkout created and skipped.
type CheckoutResponse struct {
	OrderIDs []int64               `json:"order_ids"`
	Skipped  []SkippedItemResponse `json:"skipped,omitempty"`
}

// SkippedItemResponse names a product the checkout refused and why.
type SkippedItemResponse struct {
	ProductID int64  `json:"product_id"`
	Reason    string `json:"reason"`
}

// NewCheckoutResponse maps a checkout result to its wire shape.
func NewCheckoutResponse(result *usecase.CheckoutResult) CheckoutResponse {
	resp := CheckoutResponse{OrderIDs: result.OrderIDs}
	for _, item := range result.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedItemResponse{
			ProductID: item.ProductID,
			Reason:    string(item.Reason),
		})
	}
	return resp
}

// DownloadRequest names the order to check access for.
type DownloadRequest struct {
	OrderID int64 `json:"order_id"`
}

// DownloadResponse reports download access. The link is present only when
// access is granted.
type DownloadResponse struct {
	Status       string `json:"status"`
	DownloadLink string `json:"download_link,omitempty"`
}

// DecisionRequest names the order an admin decides on.
type DecisionRequest struct {
	OrderID int64 `json:"order_id"`
}
