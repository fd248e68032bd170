package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// querier is the slice of pgxpool.Pool the repository uses, so tests can
// substitute a mock.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (commandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type commandTag interface {
	RowsAffected() int64
}

// poolQuerier adapts *pgxpool.Pool to querier.
type poolQuerier struct {
	conn *Connection
}

func (p poolQuerier) Exec(ctx context.Context, sql string, args ...any) (commandTag, error) {
	tag, err := p.conn.pool.Exec(ctx, sql, args...)
	return tag, err
}

func (p poolQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.conn.pool.Query(ctx, sql, args...)
}

func (p poolQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.conn.pool.QueryRow(ctx, sql, args...)
}

// ListingRepository stores raw listings. The ingest worker upserts; the
// pipeline's postgres source reads.
type ListingRepository struct {
	db      querier
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// RepoOption customizes a ListingRepository.
type RepoOption func(*ListingRepository)

// WithMetrics attaches query duration instrumentation.
func WithMetrics(m *prometheus.AppMetrics) RepoOption {
	return func(r *ListingRepository) { r.metrics = m }
}

// NewListingRepository builds a repository over the connection.
func NewListingRepository(conn *Connection, logger logging.Logger, opts ...RepoOption) *ListingRepository {
	r := &ListingRepository{
		db:     poolQuerier{conn: conn},
		logger: logger.Named("listing-repo"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newRepositoryWithQuerier is the test seam.
func newRepositoryWithQuerier(db querier, logger logging.Logger) *ListingRepository {
	return &ListingRepository{db: db, logger: logger}
}

// queryTimer starts a duration timer for one query; defer its
// ObserveDuration at the top of each repository method.
func (r *ListingRepository) queryTimer(operation string) *prometheus.Timer {
	if r.metrics == nil {
		return prometheus.NewTimer(nil)
	}
	return prometheus.NewTimer(r.metrics.DBQueryDuration.WithLabelValues(operation))
}

const upsertListingSQL = `
INSERT INTO listings (title, location, price, cash_flow, description, latitude, longitude)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (title, latitude, longitude) DO UPDATE SET
	location    = EXCLUDED.location,
	price       = EXCLUDED.price,
	cash_flow   = EXCLUDED.cash_flow,
	description = EXCLUDED.description,
	updated_at  = now()`

// UpsertRaw inserts or refreshes one raw listing. Identity is the
// (title, latitude, longitude) triple: a re-scraped listing with an updated
// price or description replaces its previous row.
func (r *ListingRepository) UpsertRaw(ctx context.Context, raw listing.Raw) error {
	defer r.queryTimer("upsert").ObserveDuration()

	_, err := r.db.Exec(ctx, upsertListingSQL,
		raw.Title, raw.Location, raw.Price, raw.CashFlow,
		raw.Description, raw.Latitude, raw.Longitude)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to upsert listing").WithDetail(raw.Title)
	}
	return nil
}

const listRawSQL = `
SELECT title, location, price, cash_flow, description, latitude, longitude
FROM listings
ORDER BY created_at, title`

// ListRaw returns every stored raw listing in insertion order, satisfying
// the pipeline's source contract.
func (r *ListingRepository) ListRaw(ctx context.Context) ([]listing.Raw, error) {
	defer r.queryTimer("list").ObserveDuration()

	rows, err := r.db.Query(ctx, listRawSQL)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to query listings")
	}
	defer rows.Close()

	var listings []listing.Raw
	for rows.Next() {
		var raw listing.Raw
		if err := rows.Scan(&raw.Title, &raw.Location, &raw.Price, &raw.CashFlow,
			&raw.Description, &raw.Latitude, &raw.Longitude); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
				"failed to scan listing row")
		}
		listings = append(listings, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"listing row iteration failed")
	}
	return listings, nil
}

// Count returns the number of stored listings.
func (r *ListingRepository) Count(ctx context.Context) (int, error) {
	defer r.queryTimer("count").ObserveDuration()

	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM listings`).Scan(&n); err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to count listings")
	}
	return n, nil
}

// DeleteAll clears the store. Used by the CLI for re-ingesting from scratch.
func (r *ListingRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer r.queryTimer("delete_all").ObserveDuration()

	tag, err := r.db.Exec(ctx, `DELETE FROM listings`)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to clear listings")
	}
	return tag.RowsAffected(), nil
}
