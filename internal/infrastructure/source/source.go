// Package source provides the listing sources the scoring pipeline reads
// from: the bundled reference dataset, a JSON file, or the listing store fed
// by the ingest worker. Sources deliver raw listings only; every enrichment
// happens downstream in the pipeline.
package source

import (
	"context"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
)

// Source supplies raw listings to the scoring pipeline. Implementations must
// be safe for concurrent use; Fetch may be called from the HTTP refresh
// handler and the CLI simultaneously.
type Source interface {
	// Name identifies the source for logs and metrics.
	Name() string

	// Fetch returns the current raw listing set. A returned error means no
	// listings could be read at all; per-listing data problems degrade inside
	// the pipeline instead.
	Fetch(ctx context.Context) ([]listing.Raw, error)
}
