package push

import (
	"go.uber.org/fx"

	"github.com/vdeep/craftmart/internal/notify"
)

// Module exposes the web push sender to the fx graph.
var Module = fx.Provide(
	New,
	func(s *WebPushSender) notify.PushSender { return s },
)
