package geocode

import (
	"github.com/mietwerklabs/mietwerk/internal/geocode/provider/mapbox"
	"github.com/mietwerklabs/mietwerk/internal/geocode/service"
	"go.uber.org/fx"
)

var Module = fx.Module("geocode.service",
	fx.Provide(mapbox.New),
	fx.Provide(service.New),
)
