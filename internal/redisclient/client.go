package redisclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// SetLatestReading caches the most recent reading for a meter
func (c *Client) SetLatestReading(ctx context.Context, meterNumber string, currentReading float64, readingDate string) error {
	key := fmt.Sprintf("meter:%s:latest", meterNumber)

	pipe := c.rdb.Pipeline()
	pipe.HSet(ctx, key, "current_reading", currentReading)
	pipe.HSet(ctx, key, "reading_date", readingDate)

	_, err := pipe.Exec(ctx)
	return err
}

// GetLatestReading retrieves the cached latest reading for a meter.
// The bool result reports whether the cache held an entry.
func (c *Client) GetLatestReading(ctx context.Context, meterNumber string) (float64, string, bool, error) {
	key := fmt.Sprintf("meter:%s:latest", meterNumber)

	result, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return 0, "", false, err
	}
	if len(result) == 0 {
		return 0, "", false, nil
	}

	currentReading, err := strconv.ParseFloat(result["current_reading"], 64)
	if err != nil {
		return 0, "", false, fmt.Errorf("corrupt cached reading for meter %s: %w", meterNumber, err)
	}

	return currentReading, result["reading_date"], true, nil
}

// InvalidateLatestReading drops the cached reading for a meter
func (c *Client) InvalidateLatestReading(ctx context.Context, meterNumber string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("meter:%s:latest", meterNumber)).Err()
}

// SetCachedStats stores a serialized stats payload with TTL
func (c *Client) SetCachedStats(ctx context.Context, name string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("stats:%s", name), payload, ttl).Err()
}

// GetCachedStats retrieves a serialized stats payload; nil when absent
func (c *Client) GetCachedStats(ctx context.Context, name string) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, fmt.Sprintf("stats:%s", name)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// ClaimTransactionRef claims a payment transaction reference with TTL.
// Returns false when the reference was already claimed.
func (c *Client) ClaimTransactionRef(ctx context.Context, ref string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, fmt.Sprintf("txref:%s", ref), "1", ttl).Result()
}

// ReleaseTransactionRef drops a claimed transaction reference
func (c *Client) ReleaseTransactionRef(ctx context.Context, ref string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("txref:%s", ref)).Err()
}
