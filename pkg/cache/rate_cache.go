package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"currency_agent_back/models"

	"github.com/sirupsen/logrus"
)

const DefaultTTL = 10 * time.Minute

type RateCache interface {
	Get(ctx context.Context, key string) (models.PairRate, bool, error)
	Set(ctx context.Context, key string, rate models.PairRate) error
}

// Key собирает ключ кэша для пары валют: USD_PKR
func Key(base, target string) string {
	return strings.ToUpper(base) + "_" + strings.ToUpper(target)
}

type cachedRate struct {
	Rate      models.PairRate
	Timestamp time.Time
}

type MemoryRateCache struct {
	mu    sync.Mutex
	rates map[string]cachedRate
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryRateCache(ttl time.Duration) *MemoryRateCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryRateCache{
		rates: make(map[string]cachedRate),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get возвращает курс из кэша или false, если его нет или он устарел
func (c *MemoryRateCache) Get(_ context.Context, key string) (models.PairRate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rateData, ok := c.rates[key]
	if !ok {
		return models.PairRate{}, false, nil
	}

	if c.now().Sub(rateData.Timestamp) > c.ttl {
		delete(c.rates, key)
		return models.PairRate{}, false, nil
	}

	logrus.WithField("key", key).Debug("Курс взят из кэша")
	return rateData.Rate, true, nil
}

// Set сохраняет курс в кэш
func (c *MemoryRateCache) Set(_ context.Context, key string, rate models.PairRate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rates[key] = cachedRate{
		Rate:      rate,
		Timestamp: c.now(),
	}

	logrus.WithField("key", key).Debug("Курс сохранён в кэш")
	return nil
}
