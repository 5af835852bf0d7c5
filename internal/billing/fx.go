package billing

import (
	"github.com/conformly/conformly/internal/billing/repository"
	"github.com/conformly/conformly/internal/billing/service"
	"github.com/conformly/conformly/internal/billing/stripe"
	"github.com/conformly/conformly/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(repository.Provide),
	fx.Provide(func(cfg config.Config) service.SubscriptionFetcher {
		return stripe.NewClient(cfg.StripeSecretKey, cfg.StripeAPIBaseURL)
	}),
	fx.Provide(service.NewService),
)
