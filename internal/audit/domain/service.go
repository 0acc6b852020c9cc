package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Entry is a single action to record. AccountID nil marks system
// actions outside any account scope.
type Entry struct {
	AccountID  *snowflake.ID
	ActorType  string
	ActorID    *string
	Action     string
	TargetType string
	TargetID   *string
	IPAddress  *string
	UserAgent  *string
	Metadata   map[string]any
}

type Service interface {
	// Record persists the entry. Failures are logged, never surfaced:
	// auditing must not break the operation being audited.
	Record(ctx context.Context, entry Entry)

	// PruneBefore deletes entries created before cutoff. Returns the
	// number of rows removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
