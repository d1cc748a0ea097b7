package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/optionsengine/internal/scenario/domain"
)

type gridCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewGridCache(client redis.UniversalClient) domain.GridCache {
	return &gridCache{
		client: client,
		prefix: "scenario:grid:",
		ttl:    10 * time.Minute,
	}
}

func (c *gridCache) Get(ctx context.Context, key string) (*domain.ScenarioGrid, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var grid domain.ScenarioGrid
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, err
	}
	return &grid, nil
}

func (c *gridCache) Save(ctx context.Context, key string, grid *domain.ScenarioGrid) error {
	if grid == nil {
		return nil
	}
	data, err := json.Marshal(grid)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}
