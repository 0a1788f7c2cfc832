package geo

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"zorgkaart/internal/logging"
)

// cachedPoint is the cache value. Misses are cached too, so unresolvable
// addresses do not hit the geocoder on every map render.
type cachedPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Found bool    `json:"found"`
}

// redisCommands is the slice of the go-redis client the cache uses.
// *redis.Client satisfies it.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedGeocoder layers a Redis cache over another Geocoder. Cache failures
// are logged and treated as misses; the map degrades to slow rather than
// broken when Redis is down.
type CachedGeocoder struct {
	next   Geocoder
	rdb    redisCommands
	ttl    time.Duration
	logger logging.Logger
}

// NewCachedGeocoder wraps next with a Redis cache.
func NewCachedGeocoder(next Geocoder, rdb redisCommands, ttl time.Duration, logger logging.Logger) *CachedGeocoder {
	return &CachedGeocoder{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(adres string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(adres))
}

func (c *CachedGeocoder) Geocode(ctx context.Context, adres string) (Point, bool, error) {
	key := cacheKey(adres)

	raw, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var cached cachedPoint
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return Point{Lat: cached.Lat, Lon: cached.Lon}, cached.Found, nil
		}
		c.logger.Warn(ctx, "corrupt geocode cache entry", "key", key)
	} else if err != redis.Nil {
		c.logger.Warn(ctx, "geocode cache read failed", "error", err)
	}

	pt, found, err := c.next.Geocode(ctx, adres)
	if err != nil {
		return Point{}, false, err
	}

	val, err := json.Marshal(cachedPoint{Lat: pt.Lat, Lon: pt.Lon, Found: found})
	if err == nil {
		if err := c.rdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
			c.logger.Warn(ctx, "geocode cache write failed", "error", err)
		}
	}
	return pt, found, nil
}
