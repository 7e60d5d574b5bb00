package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces offer entries in a shared Redis.
const keyPrefix = "flight-value-ranking:offers:"

// redisClient is the subset of the go-redis API the cache needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Redis is an OfferCache shared across instances. Offers are stored as JSON
// with a TTL, so Redis handles expiry.
type Redis struct {
	client redisClient
	ttl    time.Duration
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// NewRedis creates a Redis-backed cache. A non-positive ttl uses DefaultTTL.
func NewRedis(client redisClient, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get reads and decodes the offers stored under key. A missing key is a miss, not an error.
func (r *Redis) Get(ctx context.Context, key string) ([]domain.FlightOffer, bool, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var offers []domain.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false, fmt.Errorf("decoding cached offers for %s: %w", key, err)
	}
	return offers, true, nil
}

// Set encodes offers as JSON and stores them under key with the cache TTL.
func (r *Redis) Set(ctx context.Context, key string, offers []domain.FlightOffer) error {
	if offers == nil {
		offers = []domain.FlightOffer{}
	}
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("encoding offers for %s: %w", key, err)
	}

	if err := r.client.Set(ctx, keyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ensure Redis implements usecase.OfferCache at compile time.
var _ usecase.OfferCache = (*Redis)(nil)
