package push

import (
	"context"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/vdeep/craftmart/internal/config"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/notify"
)

// WebPushSender delivers notifications over the Web Push protocol with VAPID
// authentication.
type WebPushSender struct {
	publicKey  string
	privateKey string
	subject    string
}

// New constructs WebPushSender from the configured VAPID key pair.
func New(cfg *config.Config) *WebPushSender {
	return &WebPushSender{
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
		subject:    cfg.VAPIDSubject,
	}
}

// Send pushes the payload to one subscription endpoint. Endpoints the push
// service no longer recognizes yield notify.ErrEndpointGone so the caller can
// prune them.
func (s *WebPushSender) Send(ctx context.Context, sub model.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		Subscriber:      s.subject,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return notify.ErrEndpointGone
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push error: %s", resp.Status)
	}
	return nil
}
