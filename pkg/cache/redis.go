package cache

import (
	"context"
	"encoding/json"
	"time"

	"currency_agent_back/models"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisRateCache хранит курсы в Redis, чтобы несколько инстансов делили один кэш.
type RedisRateCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisRateCache(cfg RedisConfig, ttl time.Duration) *RedisRateCache {
	return NewRedisRateCacheWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cfg.Prefix, ttl)
}

func NewRedisRateCacheWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisRateCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisRateCache{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisRateCache) key(key string) string {
	return r.prefix + key
}

func (r *RedisRateCache) Get(ctx context.Context, key string) (models.PairRate, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return models.PairRate{}, false, nil
	}
	if err != nil {
		return models.PairRate{}, false, errors.Wrapf(err, "redis get %s", key)
	}

	var rate models.PairRate
	if err := json.Unmarshal([]byte(val), &rate); err != nil {
		return models.PairRate{}, false, errors.Wrapf(err, "decode cached rate %s", key)
	}
	logrus.WithField("key", key).Debug("Курс взят из Redis")
	return rate, true, nil
}

func (r *RedisRateCache) Set(ctx context.Context, key string, rate models.PairRate) error {
	data, err := json.Marshal(rate)
	if err != nil {
		return errors.Wrapf(err, "encode rate %s", key)
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}
	logrus.WithFields(logrus.Fields{"key": key, "ttl": r.ttl}).Debug("Курс сохранён в Redis")
	return nil
}

func (r *RedisRateCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRateCache) Close() error {
	return r.client.Close()
}
