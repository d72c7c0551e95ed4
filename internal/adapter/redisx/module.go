package redisx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/vdeep/craftmart/internal/config"
	"github.com/vdeep/craftmart/internal/usecase"
)

// Module wires the redis client and its stores.
var Module = fx.Options(
	fx.Provide(
		func(cfg *config.Config) *redis.Client { return New(cfg.RedisAddress) },
		NewPendingSignupStore,
		NewCheckoutLocker,
		func(s *PendingSignupStore) usecase.PendingSignupStore { return s },
		func(l *CheckoutLocker) usecase.CheckoutLocker { return l },
	),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, rdb *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return rdb.Close()
		},
	})
}
