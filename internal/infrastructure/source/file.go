package source

import (
	"context"
	"encoding/json"
	"os"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// FileSource reads raw listings from a JSON file holding an array of listing
// objects. The file is re-read on every Fetch so an updated export is picked
// up by the next refresh without a restart.
type FileSource struct {
	path string
}

// NewFileSource returns a source that reads the JSON array at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source.
func (s *FileSource) Name() string { return "file" }

// Fetch implements Source.
func (s *FileSource) Fetch(_ context.Context) ([]listing.Raw, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceUnavailable,
			"failed to read listing file").WithDetail(s.path)
	}

	var listings []listing.Raw
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeListingDecodeFailed,
			"failed to decode listing file").WithDetail(s.path)
	}

	return listings, nil
}
