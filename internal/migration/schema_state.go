package migration

import (
	"context"
	"fmt"
	"time"
)

// markSchemaReady flips the single-row bootstrap state to active. Readiness
// and support tooling read this row to tell a half-migrated database from a
// bootstrapped one.
func (r *Runner) markSchemaReady(ctx context.Context, man *manifest) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_bootstrap_state (id, status, schema_version, checksum, activated_at, created_at)
		VALUES (TRUE, 'active', $1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
		    schema_version = EXCLUDED.schema_version,
		    checksum = EXCLUDED.checksum,
		    activated_at = EXCLUDED.activated_at
	`, fmt.Sprintf("%d", man.latest), man.checksum, now)
	if err != nil {
		return fmt.Errorf("mark schema ready: %w", err)
	}
	return nil
}
