package building

import (
	"github.com/mietwerklabs/mietwerk/internal/building/repository"
	"github.com/mietwerklabs/mietwerk/internal/building/service"
	"go.uber.org/fx"
)

var Module = fx.Module("building.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
