package kafka

import (
	"context"
	"encoding/json"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// RawUpserter is the slice of the listing repository the ingestor needs.
type RawUpserter interface {
	UpsertRaw(ctx context.Context, raw listing.Raw) error
}

// Ingestor decodes feed messages into raw listings and upserts them into the
// listing store.
type Ingestor struct {
	store  RawUpserter
	logger logging.Logger
}

// NewIngestor builds an ingestor over the listing store.
func NewIngestor(store RawUpserter, logger logging.Logger) *Ingestor {
	return &Ingestor{store: store, logger: logger.Named("ingestor")}
}

// Handle implements MessageHandler: decode one JSON listing and upsert it.
func (i *Ingestor) Handle(ctx context.Context, _ []byte, value []byte) error {
	var raw listing.Raw
	if err := json.Unmarshal(value, &raw); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeListingDecodeFailed,
			"undecodable ingest message")
	}
	if raw.Title == "" {
		return apperrors.New(apperrors.ErrCodeValidation,
			"ingest message missing listing title")
	}

	if err := i.store.UpsertRaw(ctx, raw); err != nil {
		return err
	}

	i.logger.Debug("listing ingested",
		logging.String("title", raw.Title),
		logging.Float64("lat", raw.Latitude),
		logging.Float64("lon", raw.Longitude))
	return nil
}
