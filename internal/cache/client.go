package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client caches computed stats rollups. Keys are scoped per aggregate
// (customer id, or "global" for admin-wide rollups) so mutations can
// invalidate exactly the entries they stale out.
type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func orderStatsKey(customerID *uint) string {
	if customerID == nil {
		return "order_stats:global"
	}
	return fmt.Sprintf("order_stats:%d", *customerID)
}

// GetOrderStats loads cached stats into dest. Returns false on a miss.
func (c *Client) GetOrderStats(ctx context.Context, customerID *uint, dest interface{}) (bool, error) {
	val, err := c.rdb.Get(ctx, orderStatsKey(customerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cached stats: %w", err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached stats: %w", err)
	}
	return true, nil
}

func (c *Client) SetOrderStats(ctx context.Context, customerID *uint, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return c.rdb.Set(ctx, orderStatsKey(customerID), jsonData, ttl).Err()
}

// InvalidateOrderStats drops the tenant's cached rollup and the global one.
// Called after every order mutation.
func (c *Client) InvalidateOrderStats(ctx context.Context, customerID uint) error {
	return c.rdb.Del(ctx, orderStatsKey(&customerID), orderStatsKey(nil)).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
