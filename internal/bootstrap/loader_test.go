package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/index"
	"github.com/MrSnakeDoc/secdash/internal/logger"
	"github.com/MrSnakeDoc/secdash/internal/sources/dataset"
	redisstore "github.com/MrSnakeDoc/secdash/internal/store/redis"
)

type failingSource struct{}

func (failingSource) Name() string { return "broken" }

func (failingSource) Load(context.Context) ([]domain.Record, error) {
	return nil, errors.New("disk on fire")
}

type failingPublisher struct{ called, flushed bool }

func (p *failingPublisher) PublishRecords(context.Context, []domain.Record) error {
	p.called = true
	return errors.New("redis down")
}

func (p *failingPublisher) FlushViews(context.Context) (int, error) {
	p.flushed = true
	return 0, nil
}

func setupTestRedis(t *testing.T) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewStore(client), mr
}

func TestLoadFillsIndex(t *testing.T) {
	idx := index.NewMemoryIndex()

	err := NewLoader(dataset.NewEmbeddedSource(), idx, logger.NewNop()).Load(context.Background())
	require.NoError(t, err)

	assert.True(t, idx.Loaded())
	assert.Equal(t, 12, idx.Count())
	assert.Equal(t, "embedded", idx.Source())
	assert.NotEmpty(t, idx.Fingerprint())
}

func TestLoadSourceError(t *testing.T) {
	idx := index.NewMemoryIndex()

	err := NewLoader(failingSource{}, idx, logger.NewNop()).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.False(t, idx.Loaded())
}

func TestLoadTwiceFails(t *testing.T) {
	idx := index.NewMemoryIndex()
	l := NewLoader(dataset.NewEmbeddedSource(), idx, logger.NewNop())

	require.NoError(t, l.Load(context.Background()))
	assert.ErrorIs(t, l.Load(context.Background()), index.ErrAlreadyLoaded)
}

func TestLoadPublishesSnapshot(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestRedis(t)

	idx := index.NewMemoryIndex()
	require.NoError(t, NewLoader(dataset.NewEmbeddedSource(), idx, logger.NewNop()).WithPublisher(store).Load(ctx))

	// a second replica starting from redis sees the same snapshot
	replica := index.NewMemoryIndex()
	require.NoError(t, NewLoader(store, replica, logger.NewNop()).Load(ctx))

	assert.Equal(t, idx.Count(), replica.Count())
	assert.Equal(t, idx.Fingerprint(), replica.Fingerprint())
	assert.Equal(t, "redis", replica.Source())
}

func TestPublishFailureIsNotFatal(t *testing.T) {
	idx := index.NewMemoryIndex()
	pub := &failingPublisher{}

	err := NewLoader(dataset.NewEmbeddedSource(), idx, logger.NewNop()).WithPublisher(pub).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, pub.called)
	assert.False(t, pub.flushed, "views are only flushed after a successful publish")
	assert.True(t, idx.Loaded())
}

func TestLoadFlushesViewsOfPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedis(t)

	stale := redisstore.ViewKey("oldfingerprint", "q=xss")
	require.NoError(t, store.CacheMatches(ctx, "oldfingerprint", "q=xss", []int{1}, time.Minute))
	require.True(t, mr.Exists(stale))

	idx := index.NewMemoryIndex()
	require.NoError(t, NewLoader(dataset.NewEmbeddedSource(), idx, logger.NewNop()).WithPublisher(store).Load(ctx))

	assert.False(t, mr.Exists(stale), "views keyed on an older snapshot must be flushed")
	assert.True(t, mr.Exists(redisstore.RecordsKey()))
}
