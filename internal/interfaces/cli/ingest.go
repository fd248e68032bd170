package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/database/postgres"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/source"
)

// newIngestCommand bulk-loads a JSON listing file into the listing store,
// bypassing the feed. Useful for seeding and for backfilling exports.
func newIngestCommand(root *rootOptions) *cobra.Command {
	var (
		input   string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Bulk-load a JSON listing file into the listing store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			logger, err := root.newLogger(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := postgres.RunMigrations(cfg.Database.URL(), cfg.Database.MigrationPath); err != nil {
				return err
			}
			conn, err := postgres.NewConnection(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer conn.Close()
			repo := postgres.NewListingRepository(conn, logger)

			if replace {
				deleted, err := repo.DeleteAll(ctx)
				if err != nil {
					return err
				}
				color.Yellow("cleared %d existing listing(s)", deleted)
			}

			listings, err := source.NewFileSource(input).Fetch(ctx)
			if err != nil {
				return err
			}
			for _, raw := range listings {
				if err := repo.UpsertRaw(ctx, raw); err != nil {
					return err
				}
			}

			color.Green("ingested %d listing(s)", len(listings))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON listing file (required)")
	cmd.Flags().BoolVar(&replace, "replace", false, "clear the store before loading")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
