package model

import "time"

// OrderStatus describes the manual approval lifecycle of a purchase.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusApproved OrderStatus = "Approved"
	OrderStatusRejected OrderStatus = "Rejected"
)

// Order is a single purchase intent: one product, one user, one payment reference.
// Amount is a snapshot of the product price at creation time and is never
// recomputed. ApprovedAt is stamped on every transition to Approved.
type Order struct {
	ID           int64
	UserID       int64
	ProductID    int64
	CustomerName string
	PaymentRef   string
	Amount       float64
	Evidence     *PaymentEvidence
	Status       OrderStatus
	CreatedAt    time.Time
	ApprovedAt   *time.Time
}

// PaymentEvidence points at an uploaded proof-of-payment artifact. The core
// never inspects it; an admin does.
type PaymentEvidence struct {
	Ref          string
	ViewLink     string
	DownloadLink string
	MimeType     string
}
