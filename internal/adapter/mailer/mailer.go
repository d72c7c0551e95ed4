package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/vdeep/craftmart/internal/config"
	"github.com/vdeep/craftmart/internal/domain/model"
)

// SMTPMailer sends transactional mail through the configured SMTP relay.
type SMTPMailer struct {
	client     *mail.Client
	from       string
	adminEmail string
	clientURL  string
}

// implicitTLS reports whether the relay port speaks TLS from the first byte.
// go-mail negotiates STARTTLS by default, which a 465 relay rejects.
func implicitTLS(port int) bool {
	return port == 465
}

// New dials nothing; the go-mail client connects per send.
func New(cfg *config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPassword),
	}
	if implicitTLS(cfg.SMTPPort) {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{
		client:     client,
		from:       cfg.SMTPUser,
		adminEmail: cfg.AdminEmail,
		clientURL:  cfg.ClientURL,
	}, nil
}

// SendOTP mails the one-time registration code.
func (m *SMTPMailer) SendOTP(ctx context.Context, email, otp string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(email); err != nil {
		return err
	}
	msg.Subject("Your OTP Code")
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", otp))

	return m.client.DialAndSendWithContext(ctx, msg)
}

// SendOrderAlert mails the shop admin about a freshly placed order.
func (m *SMTPMailer) SendOrderAlert(ctx context.Context, order model.Order, productTitle string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(m.adminEmail); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("New Order Received: ₹%v - %s", order.Amount, order.CustomerName))

	body := fmt.Sprintf(
		"New order #%d\n\nCustomer: %s\nProduct: %s\nAmount: ₹%v\nPayment ref: %s\n",
		order.ID, order.CustomerName, productTitle, order.Amount, order.PaymentRef,
	)
	if order.Evidence != nil && order.Evidence.ViewLink != "" {
		body += fmt.Sprintf("Payment screenshot: %s\n", order.Evidence.ViewLink)
	}
	body += fmt.Sprintf("\nReview it at %s/admin\n", m.clientURL)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return m.client.DialAndSendWithContext(ctx, msg)
}
