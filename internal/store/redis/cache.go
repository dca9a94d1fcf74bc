package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheMatches stores the positions of the records matching a query
func (s *Store) CacheMatches(ctx context.Context, fingerprint, query string, positions []int, ttl time.Duration) error {
	data, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("failed to marshal positions: %w", err)
	}

	key := ViewKey(fingerprint, query)
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache view: %w", err)
	}
	return nil
}

// GetCachedMatches retrieves cached positions. ok is false on a cache miss.
func (s *Store) GetCachedMatches(ctx context.Context, fingerprint, query string) (positions []int, ok bool, err error) {
	key := ViewKey(fingerprint, query)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // Cache miss
		}
		return nil, false, fmt.Errorf("failed to get cached view: %w", err)
	}

	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached view: %w", err)
	}
	return positions, true, nil
}

// InvalidateView removes one cached view
func (s *Store) InvalidateView(ctx context.Context, fingerprint, query string) error {
	if err := s.client.Del(ctx, ViewKey(fingerprint, query)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate view: %w", err)
	}
	return nil
}

// FlushViews removes the cached views of every snapshot and returns how
// many entries were dropped.
func (s *Store) FlushViews(ctx context.Context) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixView+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete view key: %w", err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to flush views: %w", err)
	}
	return removed, nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
