package providers

import (
	"github.com/mietwerklabs/mietwerk/internal/providers/email"
	"github.com/mietwerklabs/mietwerk/internal/providers/pdf"
	"github.com/mietwerklabs/mietwerk/internal/providers/statement"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
	statement.Module,
)
