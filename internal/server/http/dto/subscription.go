package dto

// PushConfigResponse exposes the VAPID public key to browsers.
type PushConfigResponse struct {
	PublicKey string `json:"public_key"`
}

// SubscribeRequest mirrors the browser PushSubscription JSON.
type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256DH string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
	Role string `json:"role"`
}
