package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avelling/resman/internal/domain"
)

const (
	// listKey holds the cached JSON of the full resource list.
	listKey = "resman:resources:list"

	// DefaultListTTL is the default TTL for the cached list.
	DefaultListTTL = 60 * time.Second
)

// ListCache is an optional read-through cache for the resource list.
// Every mutation must invalidate it; reads fall back to the store on miss.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a list cache. A zero ttl falls back to DefaultListTTL.
func New(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached list, or (nil, nil) on a cache miss.
func (c *ListCache) Get(ctx context.Context) ([]domain.Resource, error) {
	data, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached list: %w", err)
	}

	var resources []domain.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached list: %w", err)
	}
	return resources, nil
}

// Set stores the list with the configured TTL.
func (c *ListCache) Set(ctx context.Context, resources []domain.Resource) error {
	data, err := json.Marshal(resources)
	if err != nil {
		return fmt.Errorf("failed to marshal list: %w", err)
	}
	if err := c.client.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache list: %w", err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *ListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached list: %w", err)
	}
	return nil
}
