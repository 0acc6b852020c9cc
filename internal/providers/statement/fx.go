package statement

import "go.uber.org/fx"

var Module = fx.Module("statement.provider",
	fx.Provide(NewDispatcher),
)
