package tenant

import (
	"github.com/mietwerklabs/mietwerk/internal/tenant/repository"
	"github.com/mietwerklabs/mietwerk/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
