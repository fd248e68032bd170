package app

import (
	"context"

	"github.com/marty-droid/laundromat-app-v3/internal/config"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/database/postgres"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/messaging/kafka"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/prometheus"
)

// RunWorker assembles and runs the ingest worker: consume the raw-listing
// feed and upsert each listing into the store until ctx is canceled.
func RunWorker(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	if err := cfg.ValidateWorker(); err != nil {
		return err
	}

	if err := postgres.RunMigrations(cfg.Database.URL(), cfg.Database.MigrationPath); err != nil {
		return err
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	collector := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "laundro",
		Subsystem:            "worker",
		EnableProcessMetrics: true,
	}, logger)
	metrics := prometheus.NewAppMetrics(collector)

	repo := postgres.NewListingRepository(conn, logger, postgres.WithMetrics(metrics))
	ingestor := kafka.NewIngestor(repo, logger)

	consumer := kafka.NewConsumer(cfg.Kafka, ingestor.Handle, logger, kafka.WithMetrics(metrics))
	defer consumer.Close()

	logger.Info("ingest worker started",
		logging.String("topic", cfg.Kafka.Topic),
		logging.String("group", cfg.Kafka.GroupID))

	return consumer.Run(ctx)
}
