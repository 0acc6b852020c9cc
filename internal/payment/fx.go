package payment

import (
	"github.com/mietwerklabs/mietwerk/internal/payment/adapters"
	"github.com/mietwerklabs/mietwerk/internal/payment/adapters/stripe"
	"github.com/mietwerklabs/mietwerk/internal/payment/repository"
	"github.com/mietwerklabs/mietwerk/internal/payment/service"
	"github.com/mietwerklabs/mietwerk/internal/payment/webhook"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideEventRepo),
	fx.Provide(func() *adapters.Registry {
		return adapters.NewRegistry(
			stripe.NewFactory(),
		)
	}),
	fx.Provide(service.NewCheckoutService),
	fx.Provide(webhook.NewService),
)
