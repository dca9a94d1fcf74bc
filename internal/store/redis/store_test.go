package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/sources/dataset"
)

// setupTestRedis starts an in-memory redis and returns a store bound to it
func setupTestRedis(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client), mr
}

func sampleRecords(t *testing.T) []domain.Record {
	t.Helper()
	records, err := dataset.NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)
	return records
}

func TestPublishAndGetAllRecords(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()
	records := sampleRecords(t)

	require.NoError(t, store.PublishRecords(ctx, records))

	got, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(records))

	for i := range records {
		assert.Equal(t, records[i], got[i], "record %d should survive the round trip in order", i)
	}

	n, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(records)), n)
}

func TestPublishRecordsReplacesCollection(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()
	records := sampleRecords(t)

	require.NoError(t, store.PublishRecords(ctx, records))
	require.NoError(t, store.PublishRecords(ctx, records[:2]))

	got, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetAllRecordsEmpty(t *testing.T) {
	store, _ := setupTestRedis(t)

	got, err := store.GetAllRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetAllRecordsRejectsInvalidRow(t *testing.T) {
	store, mr := setupTestRedis(t)

	_, err := mr.Push(RecordsKey(), `{"repo":"acme/api","type":"commit","year":2024,"sha":"abc","state":"merged"}`)
	require.NoError(t, err)

	_, err = store.GetAllRecords(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStateOnNonPullRequest)
}

func TestGetAllRecordsRejectsMalformedJSON(t *testing.T) {
	store, mr := setupTestRedis(t)

	_, err := mr.Push(RecordsKey(), "not json")
	require.NoError(t, err)

	_, err = store.GetAllRecords(context.Background())
	assert.Error(t, err)
}

func TestStoreAsSource(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	var src dataset.Source = store
	assert.Equal(t, "redis", src.Name())

	require.NoError(t, store.PublishRecords(ctx, sampleRecords(t)))
	got, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 12)
}

func TestCacheMatches(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	positions, ok, err := store.GetCachedMatches(ctx, "fp", "q=auth")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")
	assert.Nil(t, positions)

	require.NoError(t, store.CacheMatches(ctx, "fp", "q=auth", []int{0, 3, 7}, time.Minute))

	positions, ok, err = store.GetCachedMatches(ctx, "fp", "q=auth")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{0, 3, 7}, positions)

	_, ok, err = store.GetCachedMatches(ctx, "other", "q=auth")
	require.NoError(t, err)
	assert.False(t, ok, "a different fingerprint must not share entries")
}

func TestCacheMatchesEmptyResult(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.CacheMatches(ctx, "fp", "q=nothing", []int{}, time.Minute))

	positions, ok, err := store.GetCachedMatches(ctx, "fp", "q=nothing")
	require.NoError(t, err)
	assert.True(t, ok, "an empty match set is still a hit")
	assert.Empty(t, positions)
}

func TestCacheMatchesExpires(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.CacheMatches(ctx, "fp", "", []int{1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.GetCachedMatches(ctx, "fp", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidateAndFlushViews(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.CacheMatches(ctx, "fp", "a", []int{1}, time.Minute))
	require.NoError(t, store.CacheMatches(ctx, "fp", "b", []int{2}, time.Minute))
	require.NoError(t, store.PublishRecords(ctx, sampleRecords(t)))

	require.NoError(t, store.InvalidateView(ctx, "fp", "a"))
	assert.False(t, mr.Exists(ViewKey("fp", "a")))
	assert.True(t, mr.Exists(ViewKey("fp", "b")))

	removed, err := store.FlushViews(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, mr.Exists(ViewKey("fp", "b")))
	assert.True(t, mr.Exists(RecordsKey()), "flushing views must keep the record collection")
}

func TestViewKey(t *testing.T) {
	assert.Equal(t, "secdash:view:abc:q=x", ViewKey("abc", "q=x"))
	assert.Equal(t, "secdash:records", RecordsKey())
}

func TestPing(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
