package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/index"
	"github.com/MrSnakeDoc/secdash/internal/logger"
)

var (
	// ErrNotLoaded is returned while the record store is still empty.
	ErrNotLoaded = errors.New("record store not loaded")
	// ErrRecordNotFound is returned by Record for an unknown commit hash.
	ErrRecordNotFound = errors.New("record not found")
)

// ViewCache stores the positions matched by a query for a given snapshot.
// Implemented by the redis store.
type ViewCache interface {
	CacheMatches(ctx context.Context, fingerprint, query string, positions []int, ttl time.Duration) error
	GetCachedMatches(ctx context.Context, fingerprint, query string) ([]int, bool, error)
	InvalidateView(ctx context.Context, fingerprint, query string) error
}

// Service computes filtered views over the loaded record store.
type Service struct {
	index  *index.MemoryIndex
	cache  ViewCache // nil = no cache
	ttl    time.Duration
	logger logger.Logger
}

// New creates a dashboard service without a view cache
func New(idx *index.MemoryIndex, log logger.Logger) *Service {
	return &Service{
		index:  idx,
		logger: log.Named("dashboard"),
	}
}

// WithCache enables the view cache. A nil cache or a non-positive ttl
// leaves it disabled.
func (s *Service) WithCache(cache ViewCache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		return s
	}
	s.cache = cache
	s.ttl = ttl
	return s
}

// CacheEnabled reports whether views are cached
func (s *Service) CacheEnabled() bool {
	return s.cache != nil
}

// View returns the filtered view for q. Cache failures are logged and the
// view is recomputed.
func (s *Service) View(ctx context.Context, q domain.QueryState) (domain.FilteredView, error) {
	if !s.index.Loaded() {
		return domain.FilteredView{}, ErrNotLoaded
	}

	records := s.index.Records()
	if s.cache == nil {
		return domain.Recompute(records, q), nil
	}

	fingerprint := s.index.Fingerprint()
	key := q.Canonical()

	if view, ok := s.cachedView(ctx, records, q, fingerprint, key); ok {
		return view, nil
	}

	positions := domain.Match(records, q)
	if err := s.cache.CacheMatches(ctx, fingerprint, key, positions, s.ttl); err != nil {
		s.logger.Warn("failed to cache view",
			logger.String("query", key),
			logger.Error(err))
	}

	matched, _ := s.pick(positions)
	return domain.Assemble(records, q, matched), nil
}

func (s *Service) cachedView(ctx context.Context, records []domain.Record, q domain.QueryState, fingerprint, key string) (domain.FilteredView, bool) {
	positions, ok, err := s.cache.GetCachedMatches(ctx, fingerprint, key)
	if err != nil {
		s.logger.Warn("view cache unavailable, recomputing",
			logger.String("query", key),
			logger.Error(err))
		return domain.FilteredView{}, false
	}
	if !ok {
		return domain.FilteredView{}, false
	}

	matched, ok := s.pick(positions)
	if !ok {
		s.logger.Warn("cached view out of range, recomputing",
			logger.String("query", key),
			logger.Int("cached", len(positions)),
			logger.Int("total", len(records)))
		if err := s.cache.InvalidateView(ctx, fingerprint, key); err != nil {
			s.logger.Warn("failed to invalidate cached view",
				logger.String("query", key),
				logger.Error(err))
		}
		return domain.FilteredView{}, false
	}

	s.logger.Debug("view cache hit",
		logger.String("query", key),
		logger.Int("count", len(positions)))
	return domain.Assemble(records, q, matched), true
}

// Facets returns the facet options of the full store
func (s *Service) Facets() (domain.FacetOptions, error) {
	if !s.index.Loaded() {
		return domain.FacetOptions{}, ErrNotLoaded
	}
	return domain.DeriveFacets(s.index.Records()), nil
}

// Record returns the record anchored on sha
func (s *Service) Record(sha string) (domain.Record, error) {
	if !s.index.Loaded() {
		return nil, ErrNotLoaded
	}
	rec, ok := s.index.BySHA(sha)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, sha)
	}
	return rec, nil
}

// Link returns the deep link of the record anchored on sha
func (s *Service) Link(sha string) (string, bool) {
	rec, ok := s.index.BySHA(sha)
	if !ok {
		return "", false
	}
	return domain.GitHubLink(rec), true
}

// pick resolves positions against the store. ok is false when a position
// does not exist in the loaded snapshot.
func (s *Service) pick(positions []int) ([]domain.Record, bool) {
	out := make([]domain.Record, len(positions))
	for i, p := range positions {
		rec, ok := s.index.At(p)
		if !ok {
			return nil, false
		}
		out[i] = rec
	}
	return out, true
}
