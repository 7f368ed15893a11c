package requester

import (
	"github.com/brizzai/apidoc-filter/internal/config"
	"go.uber.org/fx"
)

func upstreamConfig(cfg *config.Config) *config.UpstreamConfig {
	return &cfg.Upstream
}

// Module provides the upstream fetcher
var Module = fx.Module("requester",
	fx.Provide(
		upstreamConfig,
		fx.Annotate(
			NewHTTPAuthManager,
			fx.As(new(AuthManager)),
		),
		fx.Annotate(
			NewHTTPRequester,
			fx.As(new(Fetcher)),
		),
	),
)
