package subscription

import (
	"github.com/mietwerklabs/mietwerk/internal/subscription/repository"
	"github.com/mietwerklabs/mietwerk/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
