// Package app wires configuration into running processes: the ranking API
// server and the ingest worker. Both the standalone binaries and the CLI
// subcommands boot through here so dependency assembly lives in one place.
package app

import (
	"context"

	"github.com/marty-droid/laundromat-app-v3/internal/application/pipeline"
	"github.com/marty-droid/laundromat-app-v3/internal/config"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/scoring"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/database/postgres"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/database/redis"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/prometheus"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/source"
	httpiface "github.com/marty-droid/laundromat-app-v3/internal/interfaces/http"
	"github.com/marty-droid/laundromat-app-v3/internal/interfaces/http/handlers"
)

// Version is injected at build time via ldflags.
var Version = "dev"

// newScorer builds the scorer from config, falling back to defaults when the
// scoring section is empty.
func newScorer(cfg *config.Config) (*scoring.Scorer, error) {
	weights := scoring.DefaultWeights()
	if len(cfg.Scoring.Weights) > 0 {
		var err error
		weights, err = scoring.WeightsFromMap(cfg.Scoring.Weights)
		if err != nil {
			return nil, err
		}
	}

	targets := cfg.Scoring.TargetNeighborhoods
	if len(targets) == 0 {
		targets = scoring.DefaultTargetNeighborhoods()
	}
	return scoring.NewScorer(weights, targets)
}

// RunServer assembles and runs the ranking API server until ctx is canceled.
func RunServer(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	scorer, err := newScorer(cfg)
	if err != nil {
		return err
	}

	collector := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "laundro",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	metrics := prometheus.NewAppMetrics(collector)

	checkers := []handlers.DependencyChecker{}

	// Listing source per config.
	var src source.Source
	switch cfg.Source.Mode {
	case "file":
		src = source.NewFileSource(cfg.Source.Path)
	case "postgres":
		if err := postgres.RunMigrations(cfg.Database.URL(), cfg.Database.MigrationPath); err != nil {
			return err
		}
		conn, err := postgres.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer conn.Close()
		repo := postgres.NewListingRepository(conn, logger, postgres.WithMetrics(metrics))
		src = source.NewRepositorySource(repo)
		checkers = append(checkers, handlers.DependencyChecker{
			Name: "postgres", Check: conn.HealthCheck,
		})
	default:
		src = source.NewStaticSource()
	}

	// Snapshot cache, when enabled.
	var cache pipeline.SnapshotCache
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		cache = redis.NewSnapshotStore(client, cfg.Redis.KeyPrefix, cfg.Redis.SnapshotTTL,
			logger, redis.WithMetrics(metrics))
		checkers = append(checkers, handlers.DependencyChecker{
			Name: "redis", Check: client.HealthCheck,
		})
	}

	p := pipeline.New(src, scorer, logger, pipeline.WithMetrics(metrics))
	svc := pipeline.NewService(p, cache, logger)
	if err := svc.Warm(ctx); err != nil {
		return err
	}

	router := httpiface.NewRouter(httpiface.RouterDeps{
		Listings:  handlers.NewListingHandler(svc, cfg.Filter, logger),
		Health:    handlers.NewHealthHandler(Version, checkers...),
		Collector: collector,
		Metrics:   metrics,
		Logger:    logger,
		Mode:      cfg.Server.Mode,
	})

	return httpiface.NewServer(cfg.Server, router, logger).Run(ctx)
}
