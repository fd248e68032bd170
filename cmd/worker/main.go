// Command worker runs the listing ingest worker: it consumes the raw-listing
// feed and upserts each listing into the listing store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/marty-droid/laundromat-app-v3/internal/app"
	"github.com/marty-droid/laundromat-app-v3/internal/config"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: LAUNDRO_* env)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.RunWorker(ctx, cfg, logger)
}
