package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/piskvorky-backend/internal/entity"
)

const historyKey = "history"

type HistoryRepository interface {
	Add(ctx context.Context, entry *entity.HistoryEntry) error
	List(ctx context.Context) ([]*entity.HistoryEntry, error)
}

type redisHistory struct {
	client *redis.Client
}

// NewRedisHistoryRepository keeps finished games as JSON in a redis list,
// oldest first.
func NewRedisHistoryRepository(client *redis.Client) HistoryRepository {
	return &redisHistory{
		client: client,
	}
}

func (that *redisHistory) Add(ctx context.Context, entry *entity.HistoryEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not marshal history entry: %w", err)
	}

	if err = that.client.RPush(ctx, historyKey, entryJSON).Err(); err != nil {
		return fmt.Errorf("failed to push history entry: %w", err)
	}

	return nil
}

func (that *redisHistory) List(ctx context.Context) ([]*entity.HistoryEntry, error) {
	response, err := that.client.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	entries := make([]*entity.HistoryEntry, 0, len(response))
	for _, item := range response {
		var entry entity.HistoryEntry
		if err = json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}

		entries = append(entries, &entry)
	}

	return entries, nil
}
