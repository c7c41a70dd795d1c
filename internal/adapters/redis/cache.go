package redisad

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arwanasir/bank-sentiment-analysis/internal/adapters/observability"
)

// Cache is the redis-backed report cache. Values are stored as JSON.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache(ReportFamily(key), "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache(ReportFamily(key), "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, _ := json.Marshal(v)
	observability.ObserveCache(ReportFamily(key), "set")
	return r.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache(ReportFamily(key), "del")
	return r.c.Del(ctx, key).Err()
}

// ReportFamily maps a cache key to its report family for metric labels:
// "report:ratings:CBE" counts under "ratings". Keys outside the report
// namespace fall into "other" so the label set stays bounded.
func ReportFamily(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 || parts[0] != "report" {
		return "other"
	}
	return parts[1]
}
