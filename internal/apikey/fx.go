package apikey

import (
	"github.com/mietwerklabs/mietwerk/internal/apikey/repository"
	"github.com/mietwerklabs/mietwerk/internal/apikey/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apikey.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
