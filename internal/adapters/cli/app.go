package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/mercado-go/internal/adapters/catalog"
	"github.com/andrescamacho/mercado-go/internal/adapters/metrics"
	"github.com/andrescamacho/mercado-go/internal/adapters/persistence"
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
	"github.com/andrescamacho/mercado-go/internal/application/setup"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/infrastructure/config"
	"github.com/andrescamacho/mercado-go/internal/infrastructure/database"
	"github.com/andrescamacho/mercado-go/internal/infrastructure/logging"
	"github.com/andrescamacho/mercado-go/internal/infrastructure/random"
)

// app is the wired application behind every game command
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *gorm.DB
	catalogs *catalog.Provider
	mediator mediator.Mediator

	logCloser io.Closer
}

// openApp loads configuration and wires database, catalog, metrics and the
// mediator. The catalog starts loading in the background right away.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	catalogs := catalog.NewProvider(catalog.NewFileSource(cfg.Game.TablesDir, logger), logger)
	catalogs.Start(ctx)

	registry := setup.NewHandlerRegistry(
		persistence.NewGormGameStateRepository(db, logger),
		catalogs,
		nil,
		gameSettings(cfg.Game),
		random.New(cfg.Game.Seed),
		cfg.Game.EventProbability,
		logger,
	)

	if cfg.Metrics.Enabled {
		commandMetrics, err := initMetrics(cfg.Metrics)
		if err != nil {
			_ = database.Close(db)
			_ = logCloser.Close()
			return nil, err
		}
		registry.Use(metrics.PrometheusMiddleware(commandMetrics))
	}

	m, err := registry.CreateConfiguredMediator()
	if err != nil {
		_ = database.Close(db)
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		catalogs:  catalogs,
		mediator:  m,
		logCloser: logCloser,
	}, nil
}

// initMetrics creates the registry and both collectors and installs the
// round collector globally
func initMetrics(cfg config.MetricsConfig) (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry(cfg.Namespace)

	roundMetrics := metrics.NewRoundMetricsCollector()
	if err := roundMetrics.Register(); err != nil {
		return nil, fmt.Errorf("failed to register round metrics: %w", err)
	}
	metrics.SetGlobalRoundCollector(roundMetrics)

	commandMetrics := metrics.NewCommandMetricsCollector()
	if err := commandMetrics.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commandMetrics, nil
}

func gameSettings(cfg config.GameConfig) game.Settings {
	return game.Settings{
		TotalRounds:        cfg.TotalRounds,
		StartingCash:       cfg.StartingCash,
		StartingReputation: cfg.StartingReputation,
	}
}

// Close releases the database and log file and prints metrics on request
func (a *app) Close() {
	if showMetrics {
		printMetrics()
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
	_ = a.logCloser.Close()
}

// withApp opens the application, runs fn and closes it again
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
