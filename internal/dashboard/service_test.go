package dashboard

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

func loadedIndex(t *testing.T) *index.MemoryIndex {
	t.Helper()
	records, err := dataset.NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)

	idx := index.NewMemoryIndex()
	require.NoError(t, idx.Load("embedded", records))
	return idx
}

func setupTestCache(t *testing.T) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewStore(client), mr
}

// failingCache always errors
type failingCache struct{}

func (failingCache) CacheMatches(context.Context, string, string, []int, time.Duration) error {
	return errors.New("connection refused")
}

func (failingCache) GetCachedMatches(context.Context, string, string) ([]int, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingCache) InvalidateView(context.Context, string, string) error {
	return errors.New("connection refused")
}

// staticCache returns fixed positions and records invalidations
type staticCache struct {
	positions   []int
	invalidated []string
}

func (c *staticCache) CacheMatches(context.Context, string, string, []int, time.Duration) error {
	return nil
}

func (c *staticCache) GetCachedMatches(context.Context, string, string) ([]int, bool, error) {
	return c.positions, true, nil
}

func (c *staticCache) InvalidateView(_ context.Context, _, query string) error {
	c.invalidated = append(c.invalidated, query)
	return nil
}

func shas(records []domain.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Info().CommitHash)
	}
	return out
}

func TestViewNotLoaded(t *testing.T) {
	svc := New(index.NewMemoryIndex(), logger.NewNop())

	_, err := svc.View(context.Background(), domain.QueryState{})
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = svc.Facets()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestViewWithoutCacheMatchesRecompute(t *testing.T) {
	idx := loadedIndex(t)
	svc := New(idx, logger.NewNop())
	q := domain.QueryState{SearchTerm: "auth"}

	view, err := svc.View(context.Background(), q)
	require.NoError(t, err)

	want := domain.Recompute(idx.Records(), q)
	assert.Equal(t, shas(want.Records), shas(view.Records))
	assert.Equal(t, want.Links, view.Links)
	assert.Equal(t, 12, view.Total)
	assert.False(t, svc.CacheEnabled())
}

func TestViewCachesPositions(t *testing.T) {
	idx := loadedIndex(t)
	store, mr := setupTestCache(t)
	svc := New(idx, logger.NewNop()).WithCache(store, time.Minute)
	require.True(t, svc.CacheEnabled())

	ctx := context.Background()
	q := domain.SetFacet(domain.QueryState{}, domain.FacetType, "pull_request")

	first, err := svc.View(ctx, q)
	require.NoError(t, err)
	assert.True(t, mr.Exists(redisstore.ViewKey(idx.Fingerprint(), q.Canonical())))

	second, err := svc.View(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, shas(first.Records), shas(second.Records))
	assert.Equal(t, first.Links, second.Links)
	assert.Equal(t, first.Facets, second.Facets)
}

func TestViewServesCachedPositions(t *testing.T) {
	idx := loadedIndex(t)
	cache := &staticCache{positions: []int{0, 2}}
	svc := New(idx, logger.NewNop()).WithCache(cache, time.Minute)

	view, err := svc.View(context.Background(), domain.QueryState{})
	require.NoError(t, err)

	records := idx.Records()
	assert.Equal(t, []string{records[0].Info().CommitHash, records[2].Info().CommitHash}, shas(view.Records))
	assert.Empty(t, cache.invalidated)
}

func TestViewIgnoresOutOfRangeCache(t *testing.T) {
	idx := loadedIndex(t)
	cache := &staticCache{positions: []int{0, 99}}
	svc := New(idx, logger.NewNop()).WithCache(cache, time.Minute)

	q := domain.QueryState{}
	view, err := svc.View(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 12, view.Count(), "a stale cache entry should fall back to recomputing")
	assert.Equal(t, []string{q.Canonical()}, cache.invalidated, "the stale entry should be dropped")
}

func TestViewReplacesStaleRedisEntry(t *testing.T) {
	idx := loadedIndex(t)
	store, mr := setupTestCache(t)
	svc := New(idx, logger.NewNop()).WithCache(store, time.Minute)

	ctx := context.Background()
	q := domain.SetSearchTerm(domain.QueryState{}, "xss")
	key := redisstore.ViewKey(idx.Fingerprint(), q.Canonical())
	require.NoError(t, mr.Set(key, "[42]"))

	view, err := svc.View(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"b2c3d4e5f6g7"}, shas(view.Records))

	positions, ok, err := store.GetCachedMatches(ctx, idx.Fingerprint(), q.Canonical())
	require.NoError(t, err)
	require.True(t, ok, "the recomputed positions should be cached again")
	assert.Len(t, positions, 1)
}

func TestViewSurvivesCacheFailure(t *testing.T) {
	idx := loadedIndex(t)
	svc := New(idx, logger.NewNop()).WithCache(failingCache{}, time.Minute)

	view, err := svc.View(context.Background(), domain.QueryState{SearchTerm: "xss"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b2c3d4e5f6g7"}, shas(view.Records))
}

func TestWithCacheDisabledByZeroTTL(t *testing.T) {
	store, _ := setupTestCache(t)
	svc := New(loadedIndex(t), logger.NewNop()).WithCache(store, 0)
	assert.False(t, svc.CacheEnabled())
}

func TestFacets(t *testing.T) {
	svc := New(loadedIndex(t), logger.NewNop())

	facets, err := svc.Facets()
	require.NoError(t, err)
	assert.Equal(t, []domain.Kind{domain.KindCommit, domain.KindPullRequest, domain.KindCode}, facets.Types)
	assert.Equal(t, []int{2024, 2023}, facets.Years)
}

func TestLink(t *testing.T) {
	svc := New(loadedIndex(t), logger.NewNop())

	link, ok := svc.Link("b2c3d4e5f6g7")
	require.True(t, ok)
	assert.Equal(t, "https://github.com/acme/api-server/pull/456", link)

	link, ok = svc.Link("a1b2c3d4e5f6")
	require.True(t, ok)
	assert.Equal(t, "https://github.com/acme/web-app/commit/a1b2c3d4e5f6", link)

	_, ok = svc.Link("nope")
	assert.False(t, ok)
}

func TestRecord(t *testing.T) {
	svc := New(loadedIndex(t), logger.NewNop())

	rec, err := svc.Record("b2c3d4e5f6g7")
	require.NoError(t, err)
	assert.Equal(t, domain.KindPullRequest, rec.Kind())

	_, err = svc.Record("nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = New(index.NewMemoryIndex(), logger.NewNop()).Record("b2c3d4e5f6g7")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestApply(t *testing.T) {
	q := domain.QueryState{}

	q, err := Apply(q, Action{Op: OpSetSearch, Value: "SQL"})
	require.NoError(t, err)
	assert.Equal(t, "SQL", q.SearchTerm)

	q, err = Apply(q, Action{Op: OpSetFacet, Facet: "repo", Value: "acme/web-app"})
	require.NoError(t, err)
	assert.Equal(t, "acme/web-app", q.Selections.Repository)

	q, err = Apply(q, Action{Op: OpSetFacet, Facet: "repository", Value: ""})
	require.NoError(t, err)
	assert.Empty(t, q.Selections.Repository)

	_, err = Apply(q, Action{Op: OpSetFacet, Facet: "severity", Value: "high"})
	assert.ErrorIs(t, err, domain.ErrUnknownFacet)

	_, err = Apply(q, Action{Op: "reload"})
	assert.ErrorIs(t, err, ErrUnknownOp)

	q, err = Apply(q, Action{Op: OpClear})
	require.NoError(t, err)
	assert.Equal(t, domain.QueryState{}, q)
}
