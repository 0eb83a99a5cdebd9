package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/repository"
	"github.com/inkwell/backend/usecase"
)

type feedCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewFeedCache creates a Redis-backed cache for the paginated posts feed.
// Invalidation is done by bumping a version counter baked into every key, so
// stale pages simply age out through the TTL.
func NewFeedCache(client *redislib.Client, ttl time.Duration) usecase.FeedCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &feedCache{
		client: client,
		prefix: "feed:",
		ttl:    ttl,
	}
}

func (c *feedCache) GetPage(ctx context.Context, filter repository.PostFilter) (*domain.PostPage, error) {
	key, err := c.pageKey(ctx, filter)
	if err != nil {
		return nil, err
	}

	result, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, nil
		}
		return nil, err
	}

	var page domain.PostPage
	if err := json.Unmarshal([]byte(result), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *feedCache) SetPage(ctx context.Context, filter repository.PostFilter, page *domain.PostPage) error {
	if page == nil {
		return domain.ErrInvalidPayload
	}

	key, err := c.pageKey(ctx, filter)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func (c *feedCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.prefix+"ver").Err()
}

func (c *feedCache) pageKey(ctx context.Context, filter repository.PostFilter) (string, error) {
	ver, err := c.client.Get(ctx, c.prefix+"ver").Int64()
	if err != nil && err != redislib.Nil {
		return "", err
	}
	return fmt.Sprintf("%sv%d:author:%d:page:%d:limit:%d",
		c.prefix, ver, filter.AuthorID, filter.Page, filter.Limit), nil
}
