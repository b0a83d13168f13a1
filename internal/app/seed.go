package app

import (
	"context"

	"github.com/towet/payroll-processing-sys/internal/config"
	"github.com/towet/payroll-processing-sys/internal/shared/connection"
	"github.com/towet/payroll-processing-sys/internal/taxrate"

	"go.uber.org/zap"
)

// RunSeed loads the tax bracket file into tax_rates. Redis is optional here;
// when reachable the cached bracket tables are dropped.
func RunSeed(ctx context.Context, cfg config.Config, logger *zap.Logger, path string) (int, error) {
	infra, err := Connect(cfg, logger, false)
	if err != nil {
		return 0, err
	}
	defer infra.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, 1, logger)
	if err != nil {
		logger.Warn("redis unavailable, tax bracket cache not invalidated", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	seeder := taxrate.NewSeeder(taxrate.NewRepository(infra.GormDB), rdb, logger)
	return seeder.SeedFromFile(ctx, path)
}
