package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/agrilearn-network/internal/models"
)

// WeatherCache — контракт кэша погодных сводок по городам.
type WeatherCache interface {
	// Get возвращает сводку и признак её наличия в кэше.
	Get(ctx context.Context, city string) (*models.WeatherReport, bool, error)
	// Set сохраняет сводку под именем её города с TTL.
	Set(ctx context.Context, report *models.WeatherReport, ttl time.Duration) error
	// Ping проверяет доступность Redis.
	Ping(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "weather:".
func NewRedisCache(ctx context.Context, redisURL, prefix string) (WeatherCache, error) {
	const op = "cache.NewRedisCache"

	if prefix == "" {
		prefix = "weather:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

// Key — нормализованное имя города: регистр и пробелы по краям не важны.
func Key(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func (c *redisCache) key(city string) string { return c.prefix + Key(city) }

// Значение хранится как JSON-строка.
func (c *redisCache) Get(ctx context.Context, city string) (*models.WeatherReport, bool, error) {
	const op = "cache.Get"

	raw, err := c.rdb.Get(ctx, c.key(city)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var report models.WeatherReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false, fmt.Errorf("%s: decode: %w", op, err)
	}

	return &report, true, nil
}

func (c *redisCache) Set(ctx context.Context, report *models.WeatherReport, ttl time.Duration) error {
	const op = "cache.Set"

	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	if err := c.rdb.Set(ctx, c.key(report.City), raw, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *redisCache) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *redisCache) Close() error { return c.rdb.Close() }
