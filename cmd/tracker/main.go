package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/cli"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/config"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/db"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/intelligence"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/llm"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/repository"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/service"
)

func main() {
	if err := cli.NewRootCmd(wire).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// wire opens the database and builds every service from cfg.
func wire(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*cli.App, error) {
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	stores := repository.NewWorkItemStores(database)
	historyRepo := repository.NewSQLiteEstimateHistoryRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var usage service.UsageSink
	if cfg.Telemetry.Enabled {
		usage = repository.NewSQLiteUsageRepo(database)
	}

	observer := service.NewLogUseCaseObserver(logger)
	return &cli.App{
		Config:    cfg,
		Logger:    logger,
		Estimates: service.NewEstimateService(stores, historyRepo, uow, newGenerator(ctx, cfg.LLM, logger), usage, logger, observer),
		Rollups:   service.NewRollupService(projectRepo, stores, observer),
		Buffers:   service.NewBufferService(stores, depRepo),
		Hierarchy: service.NewHierarchyService(stores),
		Close:     database.Close,
	}, nil
}

// newGenerator returns nil when no completion provider can be built, which
// leaves every command except estimation usable.
func newGenerator(ctx context.Context, cfg llm.LLMConfig, logger *zap.Logger) service.EstimateGenerator {
	if !cfg.Enabled {
		return nil
	}
	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client, err := llm.NewClient(ctx, cfg, observer)
	if err != nil {
		logger.Warn("estimation disabled", zap.Error(err))
		return nil
	}
	return intelligence.NewEstimateOrchestratorFromClient(client, logger)
}
