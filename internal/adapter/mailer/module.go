package mailer

import (
	"go.uber.org/fx"

	"github.com/vdeep/craftmart/internal/notify"
	"github.com/vdeep/craftmart/internal/usecase"
)

// Module exposes the SMTP mailer to the fx graph.
var Module = fx.Provide(
	New,
	func(m *SMTPMailer) usecase.OTPSender { return m },
	func(m *SMTPMailer) notify.Mailer { return m },
)
