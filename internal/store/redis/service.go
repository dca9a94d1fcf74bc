package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/sources/dataset"
)

// Store handles Redis operations for the record collection and view cache
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Name identifies the store when used as a record source
func (s *Store) Name() string { return "redis" }

// Load reads the record collection, making the store usable as a
// dataset.Source.
func (s *Store) Load(ctx context.Context) ([]domain.Record, error) {
	return s.GetAllRecords(ctx)
}

// PublishRecords replaces the stored collection with records, in order
func (s *Store) PublishRecords(ctx context.Context, records []domain.Record) error {
	values := make([]interface{}, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(dataset.FromRecord(rec))
		if err != nil {
			return fmt.Errorf("failed to marshal record %s: %w", rec.Info().CommitHash, err)
		}
		values = append(values, data)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, RecordsKey())
		if len(values) > 0 {
			pipe.RPush(ctx, RecordsKey(), values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish records: %w", err)
	}

	return nil
}

// GetAllRecords retrieves the stored collection in order.
// A missing key yields an empty collection.
func (s *Store) GetAllRecords(ctx context.Context) ([]domain.Record, error) {
	raw, err := s.client.LRange(ctx, RecordsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	rows := make([]dataset.Row, 0, len(raw))
	for i, item := range raw {
		var row dataset.Row
		if err := json.Unmarshal([]byte(item), &row); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	return dataset.MapRows(rows)
}

// CountRecords returns the length of the stored collection
func (s *Store) CountRecords(ctx context.Context) (int64, error) {
	n, err := s.client.LLen(ctx, RecordsKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}
