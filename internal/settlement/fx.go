package settlement

import (
	"github.com/mietwerklabs/mietwerk/internal/settlement/repository"
	"github.com/mietwerklabs/mietwerk/internal/settlement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settlement.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
