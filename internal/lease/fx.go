package lease

import (
	"github.com/mietwerklabs/mietwerk/internal/lease/repository"
	"github.com/mietwerklabs/mietwerk/internal/lease/service"
	"go.uber.org/fx"
)

var Module = fx.Module("lease.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
