package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/apikey"
	"github.com/mietwerklabs/mietwerk/internal/audit"
	"github.com/mietwerklabs/mietwerk/internal/billingperiod"
	"github.com/mietwerklabs/mietwerk/internal/building"
	"github.com/mietwerklabs/mietwerk/internal/clock"
	"github.com/mietwerklabs/mietwerk/internal/config"
	"github.com/mietwerklabs/mietwerk/internal/geocode"
	"github.com/mietwerklabs/mietwerk/internal/lease"
	"github.com/mietwerklabs/mietwerk/internal/migration"
	"github.com/mietwerklabs/mietwerk/internal/observability"
	"github.com/mietwerklabs/mietwerk/internal/payment"
	"github.com/mietwerklabs/mietwerk/internal/providers"
	"github.com/mietwerklabs/mietwerk/internal/redis"
	"github.com/mietwerklabs/mietwerk/internal/scheduler"
	"github.com/mietwerklabs/mietwerk/internal/server"
	"github.com/mietwerklabs/mietwerk/internal/settlement"
	"github.com/mietwerklabs/mietwerk/internal/subscription"
	"github.com/mietwerklabs/mietwerk/internal/tenant"
	"github.com/mietwerklabs/mietwerk/internal/unit"
	"github.com/mietwerklabs/mietwerk/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "mietwerk",
		Short:   "Mietwerk CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newSchedulerCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and activate schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newSchedulerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run background scheduler workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			runScheduler()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start API server and scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runMonolith()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		append(featureModules(),
			server.Module,
		)...,
	)
	app.Run()
}

func runScheduler() {
	app := fx.New(
		append(featureModules(),
			scheduler.Module,
			fx.Invoke(startScheduler),
		)...,
	)
	app.Run()
}

func runMonolith() {
	app := fx.New(
		append(featureModules(),
			server.Module,
			scheduler.Module,
			fx.Invoke(startScheduler),
		)...,
	)
	app.Run()
}

func featureModules() []fx.Option {
	return []fx.Option{
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		building.Module,
		unit.Module,
		tenant.Module,
		lease.Module,
		billingperiod.Module,
		settlement.Module,
		subscription.Module,
		payment.Module,
		providers.Module,
		geocode.Module,
		apikey.Module,
		audit.Module,
	}
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.RunForever(context.Background())
			return nil
		},
	})
}
