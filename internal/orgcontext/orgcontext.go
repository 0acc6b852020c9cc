// Package orgcontext carries the authenticated landlord account through the
// request context. Every repository query is scoped by this ID.
package orgcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey struct{}

func WithAccountID(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func AccountIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	id, ok := ctx.Value(contextKey{}).(snowflake.ID)
	return id, ok
}
