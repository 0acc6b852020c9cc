package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Sessions racing the migrator wait on this lock; the value has no meaning
// beyond being unique to this application.
const schemaLockKey int64 = 6_152_308_447

// Runner applies the embedded schema migrations against one database handle.
type Runner struct {
	db *sql.DB
}

func NewRunner(db *sql.DB) (*Runner, error) {
	if db == nil {
		return nil, errors.New("migration database handle is required")
	}
	return &Runner{db: db}, nil
}

// Apply takes the schema advisory lock, brings the database to the latest
// embedded version, seeds the cost type catalog and records the schema state.
// It refuses to proceed on a dirty migration state.
func (r *Runner) Apply(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	release, err := r.lockSchema(ctx)
	if err != nil {
		return err
	}
	defer release()

	man, err := readManifest()
	if err != nil {
		return err
	}

	migrator, err := r.newMigrator()
	if err != nil {
		return err
	}

	if _, err := currentCleanVersion(migrator); err != nil {
		return err
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	applied, err := currentCleanVersion(migrator)
	if err != nil {
		return err
	}
	if applied != man.latest {
		return fmt.Errorf("schema version mismatch after migrate: got %d want %d", applied, man.latest)
	}

	if err := seedSystemImmutableData(ctx, r.db); err != nil {
		return err
	}
	return r.markSchemaReady(ctx, man)
}

func (r *Runner) newMigrator() (*migrate.Migrate, error) {
	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	driver, err := postgres.WithInstance(r.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}
	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}

func (r *Runner) lockSchema(ctx context.Context) (func(), error) {
	var locked bool
	if err := r.db.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", schemaLockKey).Scan(&locked); err != nil {
		return nil, fmt.Errorf("acquire schema lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another migration process holds the schema lock")
	}
	return func() {
		var released bool
		_ = r.db.QueryRow("SELECT pg_advisory_unlock($1)", schemaLockKey).Scan(&released)
	}, nil
}

func currentCleanVersion(migrator *migrate.Migrate) (uint, error) {
	version, dirty, err := migrator.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, nil
		}
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("database migrations are dirty at version %d", version)
	}
	return version, nil
}
