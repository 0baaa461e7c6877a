package main

import (
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/ledger"
	"fintrack/internal/logger"
	"fintrack/internal/period"
	"fintrack/internal/server"
	"fintrack/internal/taxonomy"
	"fintrack/internal/validator"
)

// @title           fintrack API
// @version         1.0
// @description     fintrack records income, expense, savings and investment transactions and reports dashboard totals, budgets and trends.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Env)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	validator.Register()

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	store := ledger.NewCachedStore(ledger.NewGormStore(db), cfg.ReportCacheSize, cfg.ReportCacheTTL)

	router := server.NewRouter(server.Deps{
		DB:       db,
		Store:    store,
		Taxonomy: taxonomy.Default(),
		Periods:  period.NewResolver(nil),
	})

	log.Infow("Starting fintrack server",
		"port", cfg.Port,
		"driver", dbManager.Driver(),
		"reportCacheSize", cfg.ReportCacheSize,
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return router.Run(":" + cfg.Port)
}
