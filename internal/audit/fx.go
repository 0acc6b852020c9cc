package audit

import (
	"github.com/mietwerklabs/mietwerk/internal/audit/repository"
	"github.com/mietwerklabs/mietwerk/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Provide(service.NewExporter),
)
