package billingperiod

import (
	"github.com/mietwerklabs/mietwerk/internal/billingperiod/repository"
	"github.com/mietwerklabs/mietwerk/internal/billingperiod/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billingperiod.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
