package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/index"
	"github.com/MrSnakeDoc/secdash/internal/logger"
	"github.com/MrSnakeDoc/secdash/internal/sources/dataset"
)

// Publisher receives the loaded snapshot so other replicas can start from it.
// Views cached against an earlier snapshot are flushed after publishing.
type Publisher interface {
	PublishRecords(ctx context.Context, records []domain.Record) error
	FlushViews(ctx context.Context) (int, error)
}

// Loader fills the record store once at startup
type Loader struct {
	source    dataset.Source
	index     *index.MemoryIndex
	publisher Publisher // nil = no publishing
	logger    logger.Logger
}

// NewLoader creates a loader reading from source into idx
func NewLoader(source dataset.Source, idx *index.MemoryIndex, log logger.Logger) *Loader {
	return &Loader{
		source: source,
		index:  idx,
		logger: log.Named("bootstrap").With(logger.String("source", source.Name())),
	}
}

// WithPublisher pushes the snapshot to p after a successful load
func (l *Loader) WithPublisher(p Publisher) *Loader {
	l.publisher = p
	return l
}

// Load reads the source and fills the index. Publishing is best effort.
func (l *Loader) Load(ctx context.Context) error {
	start := time.Now()
	l.logger.Info("loading records")

	records, err := l.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records from %s: %w", l.source.Name(), err)
	}

	if len(records) == 0 {
		l.logger.Warn("source returned no records, dashboard will be empty")
	}

	if err := l.index.Load(l.source.Name(), records); err != nil {
		return fmt.Errorf("failed to fill record store: %w", err)
	}

	l.logger.Info("records loaded",
		logger.Int("count", len(records)),
		logger.String("fingerprint", l.index.Fingerprint()),
		logger.Duration("elapsed", time.Since(start)))

	if l.publisher != nil {
		l.publish(ctx, records)
	}

	return nil
}

// publish is best effort: the memory index stays the primary source.
func (l *Loader) publish(ctx context.Context, records []domain.Record) {
	if err := l.publisher.PublishRecords(ctx, records); err != nil {
		l.logger.Warn("failed to publish records to redis",
			logger.Error(err))
		return
	}
	l.logger.Info("records published to redis",
		logger.Int("count", len(records)))

	removed, err := l.publisher.FlushViews(ctx)
	if err != nil {
		l.logger.Warn("failed to flush cached views",
			logger.Int("removed", removed),
			logger.Error(err))
		return
	}
	if removed > 0 {
		l.logger.Info("stale cached views flushed",
			logger.Int("removed", removed))
	}
}
