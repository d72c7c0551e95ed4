package model

import "time"

// SubscriberRole addresses a push audience.
type SubscriberRole string

const (
	RoleAdmin SubscriberRole = "admin"
	RoleUser  SubscriberRole = "user"
)

// PushSubscription is a browser push endpoint registered by a user or an admin.
type PushSubscription struct {
	ID        int64
	Endpoint  string
	P256DH    string
	Auth      string
	UserID    int64
	Role      SubscriberRole
	CreatedAt time.Time
}
