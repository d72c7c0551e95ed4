package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/vdeep/craftmart/internal/config"
	"github.com/vdeep/craftmart/internal/domain/repository"
)

// Module wires the notification dispatcher.
var Module = fx.Provide(newDispatcher)

type dispatcherParams struct {
	fx.In

	Subs   repository.SubscriptionRepository
	Push   PushSender
	Mailer Mailer
	Config *config.Config
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Subs, p.Push, p.Mailer, p.Config.DispatcherWorkers, p.Config.EventQueueSize, p.Logger)
}
