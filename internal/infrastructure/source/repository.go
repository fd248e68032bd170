package source

import (
	"context"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// RawLister is the slice of the listing repository the pipeline needs.
// Satisfied by postgres.ListingRepository.
type RawLister interface {
	ListRaw(ctx context.Context) ([]listing.Raw, error)
}

// RepositorySource adapts the listing store to the Source interface, serving
// the listings the ingest worker has accumulated.
type RepositorySource struct {
	repo RawLister
}

// NewRepositorySource returns a source backed by the listing store.
func NewRepositorySource(repo RawLister) *RepositorySource {
	return &RepositorySource{repo: repo}
}

// Name implements Source.
func (s *RepositorySource) Name() string { return "postgres" }

// Fetch implements Source.
func (s *RepositorySource) Fetch(ctx context.Context) ([]listing.Raw, error) {
	listings, err := s.repo.ListRaw(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceUnavailable,
			"failed to fetch listings from store")
	}
	return listings, nil
}
