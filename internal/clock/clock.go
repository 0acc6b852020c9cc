package clock

import (
	"context"
	"time"
)

// Clock abstracts wall time so subscription expiry and scheduler jobs can be
// driven by a fixed time in tests.
type Clock interface {
	Now(ctx context.Context) time.Time
}
