// Package cli implements the laundromat command tree: rank listings locally,
// serve the API, run the ingest worker, manage the listing store schema, and
// bulk-ingest listing files.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marty-droid/laundromat-app-v3/internal/config"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	output     string
}

// loadConfig loads configuration from the --config file when given,
// otherwise from LAUNDRO_* environment variables, then applies the
// --log-level override.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// newLogger builds the process logger from config.
func (o *rootOptions) newLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.NewLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "laundromat",
		Short: "Laundromat acquisition target prioritization",
		Long: "laundromat scores and ranks laundromat acquisition listings by\n" +
			"neighborhood fit, deal signals, and financials, and serves the\n" +
			"ranked results over an HTTP API.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: LAUNDRO_* env)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVarP(&opts.output, "output", "o", "table", "output format (table, json)")

	cmd.AddCommand(
		newRankCommand(opts),
		newServeCommand(opts),
		newWorkerCommand(opts),
		newMigrateCommand(opts),
		newIngestCommand(opts),
	)

	return cmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
