package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sparkcreatives/donations-api/internal/pkg/env"
)

const keyPrefix = "spark"

// Client wraps a Redis connection pool. It is constructed once in main and
// handed to every component that needs shared state; there is no package-level
// singleton so tests can substitute an in-memory store.
type Client struct {
	rdb          *redis.Client
	receiptTTL   time.Duration
	statementTTL time.Duration
}

// NewClient builds a Client from environment configuration and pings the
// server. A failed ping is logged but not fatal: every caller is expected to
// tolerate an unavailable store.
func NewClient() *Client {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     env.GetEnv("CACHE_PASSWORD", ""),
		DB:           0,
		PoolSize:     env.GetEnvInt("REDIS_MAX_CONNECTIONS", 50),
		ReadTimeout:  time.Duration(env.GetEnvInt("REDIS_SOCKET_TIMEOUT", 5)) * time.Second,
		WriteTimeout: time.Duration(env.GetEnvInt("REDIS_SOCKET_TIMEOUT", 5)) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if pong, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: could not connect to cache at %s:%s: %v", host, port, err)
	} else {
		log.Printf("Successfully connected to cache: %s", pong)
	}

	return &Client{
		rdb:          rdb,
		receiptTTL:   time.Duration(env.GetEnvInt("RECEIPT_TTL_SEC", 30*24*3600)) * time.Second,
		statementTTL: time.Duration(env.GetEnvInt("STATEMENT_TTL_SEC", 90*24*3600)) * time.Second,
	}
}

// Incr atomically increments a counter and returns the new value.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// Expire sets a key's TTL.
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.rdb.Expire(ctx, key, ttl).Err()
}

// Get returns the value for key, or an error wrapping redis.Nil when absent.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// SetEx stores a value with a TTL, overwriting any prior value.
func (c *Client) SetEx(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.rdb.SetEx(ctx, key, value, ttl).Err()
}

// SetNX stores a value with a TTL only if the key does not exist. The boolean
// reports whether the write happened.
func (c *Client) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, ttl).Result()
}

// HIncrBy atomically increments a hash field.
func (c *Client) HIncrBy(ctx context.Context, key, field string, incr int64) error {
	return c.rdb.HIncrBy(ctx, key, field, incr).Err()
}

// HGetAll returns all fields of a hash.
func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return c.rdb.HGetAll(ctx, key).Result()
}

// IsMiss reports whether err is the cache's key-not-found sentinel.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

func pdfKey(kind, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, kind, key)
}

// GetReceiptPDF returns a cached receipt PDF, or nil on miss or store error.
func (c *Client) GetReceiptPDF(ctx context.Context, donationID string) []byte {
	if c == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, pdfKey("receipt", donationID)).Bytes()
	if err != nil {
		return nil
	}
	return data
}

// CacheReceiptPDF stores a rendered receipt, best-effort.
func (c *Client) CacheReceiptPDF(ctx context.Context, donationID string, pdf []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.SetEx(ctx, pdfKey("receipt", donationID), pdf, c.receiptTTL).Err(); err != nil {
		log.Printf("receipt cache write failed for %s: %v", donationID, err)
	}
}

// GetStatementPDF returns a cached annual statement, or nil on miss or error.
func (c *Client) GetStatementPDF(ctx context.Context, donorID string, year int) []byte {
	if c == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, pdfKey("statement", fmt.Sprintf("%s:%d", donorID, year))).Bytes()
	if err != nil {
		return nil
	}
	return data
}

// CacheStatementPDF stores a rendered annual statement, best-effort.
func (c *Client) CacheStatementPDF(ctx context.Context, donorID string, year int, pdf []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.SetEx(ctx, pdfKey("statement", fmt.Sprintf("%s:%d", donorID, year)), pdf, c.statementTTL).Err(); err != nil {
		log.Printf("statement cache write failed for %s/%d: %v", donorID, year, err)
	}
}

// Stats reports cache server memory/hit statistics for the metrics endpoint.
func (c *Client) Stats(ctx context.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{"status": "cache_unavailable"}
	}
	info, err := c.rdb.Info(ctx, "stats", "memory").Result()
	if err != nil {
		return map[string]interface{}{"status": "cache_unavailable"}
	}
	return map[string]interface{}{"status": "ok", "raw_info_bytes": len(info)}
}
