package drive

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/vdeep/craftmart/internal/config"
	"github.com/vdeep/craftmart/internal/usecase"
)

// Module exposes the drive client implementation to the fx graph.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(func(c Client) usecase.BlobUploader { return c }),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.DriveBaseURL, p.Logger)
}
