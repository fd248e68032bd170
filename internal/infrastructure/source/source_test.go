package source

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

func TestStaticSource(t *testing.T) {
	src := NewStaticSource()
	assert.Equal(t, "static", src.Name())

	listings, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 6)

	assert.Equal(t, "Profitable Laundromat, Owner Retiring", listings[0].Title)
	assert.Equal(t, "$750,000", listings[0].Price)
	assert.InDelta(t, 41.933, listings[0].Latitude, 1e-9)
	assert.InDelta(t, -87.712, listings[0].Longitude, 1e-9)
	assert.Equal(t, "Prime Hermosa Corner Lot Laundromat", listings[5].Title)
}

func TestStaticSource_FetchReturnsCopy(t *testing.T) {
	src := NewStaticSource()

	first, err := src.Fetch(context.Background())
	require.NoError(t, err)
	first[0].Title = "mutated"

	second, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Profitable Laundromat, Owner Retiring", second[0].Title)
}

func TestFileSource(t *testing.T) {
	listings := []listing.Raw{
		{
			Title:       "Test Laundry",
			Location:    "Chicago, IL",
			Price:       "$500,000",
			CashFlow:    "$90,000",
			Description: "Real estate included.",
			Latitude:    41.93,
			Longitude:   -87.71,
		},
	}
	data, err := json.Marshal(listings)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	src := NewFileSource(path)
	assert.Equal(t, "file", src.Name())

	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, listings, got)
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "absent.json"))

	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSourceUnavailable))
}

func TestFileSource_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	src := NewFileSource(path)
	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeListingDecodeFailed))
}

// stubLister satisfies RawLister for RepositorySource tests.
type stubLister struct {
	listings []listing.Raw
	err      error
}

func (s *stubLister) ListRaw(_ context.Context) ([]listing.Raw, error) {
	return s.listings, s.err
}

func TestRepositorySource(t *testing.T) {
	want := []listing.Raw{{Title: "From Store", Price: "$100,000"}}
	src := NewRepositorySource(&stubLister{listings: want})
	assert.Equal(t, "postgres", src.Name())

	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepositorySource_StoreError(t *testing.T) {
	src := NewRepositorySource(&stubLister{err: errors.New("connection refused")})

	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSourceUnavailable))
	assert.EqualError(t, errors.Unwrap(err), "connection refused")
}
