// Command httpd runs the content optimizer HTTP service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/copyforge/optimizer/internal/api"
	"github.com/copyforge/optimizer/internal/cache"
	"github.com/copyforge/optimizer/internal/config"
	"github.com/copyforge/optimizer/internal/configloader"
	"github.com/copyforge/optimizer/internal/database"
	"github.com/copyforge/optimizer/internal/generator"
	"github.com/copyforge/optimizer/internal/logger"
	"github.com/copyforge/optimizer/internal/optimizer"
	"github.com/copyforge/optimizer/internal/processor"
	"github.com/copyforge/optimizer/internal/rewrite"
	"github.com/copyforge/optimizer/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "optimizer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configloader.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting optimizer service",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.Database.MigrationsPath, log); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	var resultCache *cache.ResultCache
	if cfg.Redis.Enabled {
		redisClient, redisErr := cache.NewClient(cfg.Redis)
		if redisErr != nil {
			return fmt.Errorf("connect redis: %w", redisErr)
		}
		defer redisClient.Close()

		resultCache = cache.NewResultCache(redisClient, cfg.Redis.TTL, log)
		log.Info("Result cache enabled",
			logger.String("address", cfg.Redis.Address),
			logger.Duration("ttl", cfg.Redis.TTL),
		)
	}

	tel := telemetry.NewProvider()

	rewriteClient := rewrite.NewClient(rewrite.Config{
		BaseURL: cfg.Rewrite.BaseURL,
		APIKey:  cfg.Rewrite.APIKey,
		Model:   cfg.Rewrite.Model,
		Timeout: cfg.Rewrite.Timeout,
	})
	rewriter := tel.InstrumentRewriter(rewriteClient)

	opt := optimizer.New(log, rewriter)
	gen := generator.New(log, rewriter)

	limiter := processor.NewRateLimiter(cfg.Rewrite.RPS, cfg.Rewrite.RPS, log)
	batch := processor.NewBatchProcessor(opt, limiter, cfg.Service.BatchConcurrency, log)

	historyRepo := database.NewOptimizationHistoryRepository(db)
	creditsRepo := database.NewCreditsRepository(db)

	handler := api.NewHandler(opt, gen, batch, historyRepo, creditsRepo, resultCache, tel, cfg, log)
	server := api.NewServer(handler, db, cfg, log)

	return server.RunWithGracefulShutdown(context.Background())
}
