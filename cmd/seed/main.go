package main

import (
	"context"
	"flag"

	"github.com/towet/payroll-processing-sys/internal/app"
	"github.com/towet/payroll-processing-sys/internal/config"

	"go.uber.org/zap"
)

func main() {
	path := flag.String("file", "configs/tax_rates.yaml", "tax bracket seed file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	n, err := app.RunSeed(context.Background(), cfg, logger, *path)
	if err != nil {
		logger.Fatal("seed tax rates failed", zap.Error(err))
	}
	logger.Info("tax rates seeded", zap.Int("brackets", n), zap.String("file", *path))
}
