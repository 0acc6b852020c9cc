package unit

import (
	"github.com/mietwerklabs/mietwerk/internal/unit/repository"
	"github.com/mietwerklabs/mietwerk/internal/unit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("unit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
