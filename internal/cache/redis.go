package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	flightsKeyPrefix     = "cache:flights:"
	flightsGenerationKey = "cache:flights:generation"
)

// flightsKey names the list stored for one generation. Lists of older
// generations are left to expire with their TTL.
func flightsKey(generation int64) string {
	return flightsKeyPrefix + strconv.FormatInt(generation, 10)
}

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

// GetFlights returns nil flights without error on a cache miss. The current
// generation is returned either way; an unset counter is generation 0.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, int64, error) {
	generation, err := c.client.Get(ctx, flightsGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, err
	}

	data, err := c.client.Get(ctx, flightsKey(generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, generation, nil
		}
		return nil, 0, err
	}

	flights, err := decodeFlights(data)
	if err != nil {
		return nil, 0, err
	}
	return flights, generation, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, generation int64, flights []domain.Flight) error {
	payload, err := encodeFlights(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(generation), payload, c.flightsTTL).Err()
}

// InvalidateFlights moves readers to a new generation.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Incr(ctx, flightsGenerationKey).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Cached lists are msgpack-encoded; an empty list stays distinct from a miss.
func encodeFlights(flights []domain.Flight) ([]byte, error) {
	if flights == nil {
		flights = []domain.Flight{}
	}
	return msgpack.Marshal(flights)
}

func decodeFlights(data []byte) ([]domain.Flight, error) {
	flights := []domain.Flight{}
	if err := msgpack.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}
