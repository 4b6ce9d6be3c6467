package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portfolio/blog-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// PostCache provides a best-effort read cache for posts backed by Redis.
// Key format: post:<id>
type PostCache struct {
	client *redis.Client
}

// NewPostCache creates a PostCache wrapping the given Redis client.
func NewPostCache(client *redis.Client) *PostCache {
	return &PostCache{client: client}
}

// Get returns the cached post or nil when the key is absent.
func (c *PostCache) Get(ctx context.Context, id int64) (*domain.Post, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("post cache get: %w", err)
	}

	var p domain.Post
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("post cache decode: %w", err)
	}
	return &p, nil
}

// Set stores the post under its id (expires after cacheTTL).
func (c *PostCache) Set(ctx context.Context, post *domain.Post) error {
	raw, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("post cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(post.ID), raw, cacheTTL).Err()
}

// Invalidate drops the cached entry for id.
func (c *PostCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *PostCache) key(id int64) string {
	return fmt.Sprintf("post:%d", id)
}
