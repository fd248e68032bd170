package pipeline

import (
	"context"
	"sync"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/ranking"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// SnapshotCache persists the scored set across restarts so a warm process
// can serve rankings before its first pipeline run. Implemented by the redis
// snapshot store.
type SnapshotCache interface {
	// GetSnapshot returns the cached scored set; ok is false on a miss.
	GetSnapshot(ctx context.Context) (scored []listing.Scored, ok bool, err error)

	// SetSnapshot stores the scored set under the configured TTL.
	SetSnapshot(ctx context.Context, scored []listing.Scored) error
}

// Service owns the current ranked snapshot. Reads are lock-cheap; Refresh
// swaps the snapshot atomically so queries never observe a partial run.
type Service struct {
	pipeline *Pipeline
	cache    SnapshotCache
	logger   logging.Logger

	mu     sync.RWMutex
	engine *ranking.Engine
}

// NewService builds a Service over the pipeline. cache may be nil, which
// disables snapshot persistence.
func NewService(p *Pipeline, cache SnapshotCache, logger logging.Logger) *Service {
	return &Service{
		pipeline: p,
		cache:    cache,
		logger:   logger.Named("listing-service"),
	}
}

// Warm loads the cached snapshot if one exists, otherwise runs the pipeline.
// Intended for startup so the first request never pays the full run.
func (s *Service) Warm(ctx context.Context) error {
	if s.cache != nil {
		scored, ok, err := s.cache.GetSnapshot(ctx)
		if err != nil {
			s.logger.Warn("snapshot cache read failed, running pipeline", logging.Err(err))
		} else if ok {
			s.mu.Lock()
			s.engine = ranking.NewEngine(scored)
			s.mu.Unlock()
			s.logger.Info("snapshot restored from cache", logging.Int("listings", len(scored)))
			return nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh runs the pipeline and swaps in the new snapshot. On failure the
// previous snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	engine, err := s.pipeline.Run(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, engine.All()); err != nil {
			// Cache persistence is best-effort; serving continues either way.
			s.logger.Warn("snapshot cache write failed", logging.Err(err))
		}
	}
	return nil
}

// snapshot returns the current engine or an error when no run has succeeded
// yet.
func (s *Service) snapshot() (*ranking.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.engine == nil {
		return nil, apperrors.New(apperrors.ErrCodePipelineEmptyInput,
			"no ranked snapshot available yet")
	}
	return s.engine, nil
}

// Query returns the ranked listings matching the criteria.
func (s *Service) Query(c ranking.Criteria) ([]listing.Scored, error) {
	engine, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return engine.Filter(c), nil
}

// Summary returns the KPI row over the listings matching the criteria.
func (s *Service) Summary(c ranking.Criteria) (ranking.Summary, error) {
	engine, err := s.snapshot()
	if err != nil {
		return ranking.Summary{}, err
	}
	return ranking.Summarize(engine.Filter(c)), nil
}

// All returns the full ranked snapshot with no filtering.
func (s *Service) All() ([]listing.Scored, error) {
	engine, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return engine.All(), nil
}
