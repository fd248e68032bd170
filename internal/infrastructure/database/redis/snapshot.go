package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// snapshotKey is the suffix under the configured key prefix.
const snapshotKey = "snapshot:scored"

// cmdable is the slice of the redis client the store uses, substitutable in
// tests.
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SnapshotStore persists the scored listing set as one JSON value under a
// TTL. It satisfies the pipeline's SnapshotCache contract.
type SnapshotStore struct {
	rdb     cmdable
	prefix  string
	ttl     time.Duration
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// SnapshotOption customizes a SnapshotStore.
type SnapshotOption func(*SnapshotStore)

// WithMetrics records cache hit/miss counters.
func WithMetrics(m *prometheus.AppMetrics) SnapshotOption {
	return func(s *SnapshotStore) { s.metrics = m }
}

// NewSnapshotStore builds a store over the client using prefix and ttl from
// the redis config.
func NewSnapshotStore(client *Client, prefix string, ttl time.Duration, logger logging.Logger, opts ...SnapshotOption) *SnapshotStore {
	s := &SnapshotStore{
		rdb:    client.rdb,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.Named("snapshot-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newSnapshotStoreWithCmdable is the test seam.
func newSnapshotStoreWithCmdable(rdb cmdable, prefix string, ttl time.Duration, logger logging.Logger) *SnapshotStore {
	return &SnapshotStore{rdb: rdb, prefix: prefix, ttl: ttl, logger: logger}
}

func (s *SnapshotStore) key() string {
	return s.prefix + snapshotKey
}

// GetSnapshot returns the cached scored set; ok is false on a miss. A
// corrupt value is treated as a miss after deleting the key, so a bad cache
// entry can never wedge startup.
func (s *SnapshotStore) GetSnapshot(ctx context.Context) ([]listing.Scored, bool, error) {
	data, err := s.rdb.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		s.recordAccess(false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.ErrCodeCacheError,
			"snapshot cache read failed")
	}

	var scored []listing.Scored
	if err := json.Unmarshal(data, &scored); err != nil {
		s.logger.Warn("discarding corrupt cached snapshot", logging.Err(err))
		_ = s.rdb.Del(ctx, s.key()).Err()
		s.recordAccess(false)
		return nil, false, nil
	}

	s.recordAccess(true)
	return scored, true, nil
}

// SetSnapshot stores the scored set under the configured TTL.
func (s *SnapshotStore) SetSnapshot(ctx context.Context, scored []listing.Scored) error {
	data, err := json.Marshal(scored)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization,
			"failed to encode snapshot")
	}
	if err := s.rdb.Set(ctx, s.key(), data, s.ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError,
			"snapshot cache write failed")
	}
	return nil
}

// Invalidate drops the cached snapshot.
func (s *SnapshotStore) Invalidate(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key()).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError,
			"snapshot cache invalidation failed")
	}
	return nil
}

func (s *SnapshotStore) recordAccess(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheAccess("snapshot", hit)
	}
}
