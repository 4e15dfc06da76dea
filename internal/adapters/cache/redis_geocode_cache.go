package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache stores resolutions in Redis, for deployments that
// already run one. Entries expire after TTL; a zero TTL keeps them
// forever.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type redisGeocodeEntry struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Label string  `json:"label"`
}

// Fetch the cached resolution for the given address.
func (r *RedisGeocodeCache) Get(
	ctx context.Context,
	address string,
) (_ domain.ResolvedLocation, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if r.Client == nil {
		return domain.ResolvedLocation{}, false, errors.New("geocode cache: redis client is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.ResolvedLocation{}, false, nil
	}

	raw, err := r.Client.Get(ctx, redisKeyPrefix+address).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ResolvedLocation{}, false, nil
	}
	if err != nil {
		return domain.ResolvedLocation{}, false, fmt.Errorf("get geocode cache: redis get: %w", err)
	}

	var entry redisGeocodeEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return domain.ResolvedLocation{}, false, fmt.Errorf("get geocode cache: decode entry: %w", err)
	}

	return domain.ResolvedLocation{
		Coords:  domain.Coordinates{Lon: entry.Lon, Lat: entry.Lat},
		Address: entry.Label,
	}, true, nil
}

// Store an address -> resolution mapping in the cache.
func (r *RedisGeocodeCache) Put(
	ctx context.Context,
	address string,
	loc domain.ResolvedLocation,
) (err error) {
	defer obs.Time(ctx, "geocode.cache.Put")(&err)

	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}

	payload, err := json.Marshal(redisGeocodeEntry{
		Lon:   loc.Coords.Lon,
		Lat:   loc.Coords.Lat,
		Label: loc.Address,
	})
	if err != nil {
		return fmt.Errorf("put geocode cache: encode entry: %w", err)
	}

	if err := r.Client.Set(ctx, redisKeyPrefix+address, payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("put geocode cache: redis set: %w", err)
	}

	return nil
}
