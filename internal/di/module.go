package di

import (
	"go.uber.org/fx"

	"github.com/vdeep/craftmart/internal/adapter/drive"
	"github.com/vdeep/craftmart/internal/adapter/mailer"
	"github.com/vdeep/craftmart/internal/adapter/push"
	"github.com/vdeep/craftmart/internal/adapter/redisx"
	"github.com/vdeep/craftmart/internal/app"
	"github.com/vdeep/craftmart/internal/config"
	"github.com/vdeep/craftmart/internal/logger"
	"github.com/vdeep/craftmart/internal/notify"
	"github.com/vdeep/craftmart/internal/pkg/auth"
	"github.com/vdeep/craftmart/internal/server/http/handlers"
	"github.com/vdeep/craftmart/internal/server/http/router"
	"github.com/vdeep/craftmart/internal/storage/postgres"
	"github.com/vdeep/craftmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redisx.Module,
		drive.Module,
		mailer.Module,
		push.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(
			func(d *notify.Dispatcher) usecase.Notifier { return d },
			func(f *app.ShopFacade) handlers.ShopFacade { return f },
			func(s *postgres.Storage) router.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
