// Package db provides the shared gorm handle.
package db

import (
	"context"
	"time"

	"github.com/mietwerklabs/mietwerk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	gormprometheus "gorm.io/plugin/prometheus"
)

func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := gdb.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          "mietwerk",
		RefreshInterval: 15,
	})); err != nil {
		log.Warn("db metrics plugin not attached", zap.Error(err))
	}

	return gdb, nil
}

var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Invoke(func(lc fx.Lifecycle, gdb *gorm.DB, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
				defer cancel()
				if err := sqlDB.PingContext(pingCtx); err != nil {
					return err
				}
				log.Info("database connected")
				return nil
			},
			OnStop: func(context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
	}),
)
