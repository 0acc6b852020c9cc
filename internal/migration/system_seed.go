package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mietwerklabs/mietwerk/internal/apportionment"
)

// seedSystemImmutableData upserts the BetrKV cost type catalog. The engine
// carries the catalog in code; the table exists so clients can enumerate
// categories without shipping the list themselves.
func seedSystemImmutableData(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("system seed requires database handle")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin system seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := seedCostTypes(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit system seed transaction: %w", err)
	}
	return nil
}

func seedCostTypes(ctx context.Context, tx *sql.Tx) error {
	for code, label := range apportionment.CostTypeLabels {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cost_type_catalog (code, label)
			VALUES ($1, $2)
			ON CONFLICT (code) DO UPDATE SET label = EXCLUDED.label
		`, code, label); err != nil {
			return fmt.Errorf("seed cost type %s: %w", code, err)
		}
	}
	return nil
}
