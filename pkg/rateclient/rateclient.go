package rateclient

import (
	"context"
	"strings"
	"time"

	"currency_agent_back/models"
	"currency_agent_back/pkg/cache"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://v6.exchangerate-api.com/v6"
	DefaultTimeout = 10 * time.Second
)

var (
	ErrRateRejected = errors.New("exchange rate api rejected the request")
	ErrNoRate       = errors.New("exchange rate api returned no conversion_rate")
)

type Fetcher interface {
	PairRate(ctx context.Context, base, target string) (models.PairRate, error)
}

// ExchangeRateClient ходит в exchangerate-api за курсом пары валют.
type ExchangeRateClient struct {
	client *resty.Client
	apiKey string
}

func NewExchangeRateClient(baseURL, apiKey string, timeout time.Duration) *ExchangeRateClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &ExchangeRateClient{client: client, apiKey: apiKey}
}

func (c *ExchangeRateClient) PairRate(ctx context.Context, base, target string) (models.PairRate, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	target = strings.ToUpper(strings.TrimSpace(target))

	logrus.WithFields(logrus.Fields{"base": base, "target": target}).Info("Запрос курса к exchangerate-api")

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"key":    c.apiKey,
			"base":   base,
			"target": target,
		}).
		SetResult(&models.PairRate{}).
		SetError(&models.PairRate{}).
		Get("/{key}/pair/{base}/{target}")
	if err != nil {
		return models.PairRate{}, errors.Wrap(err, "exchange rate request failed")
	}

	if resp.IsError() {
		errorType := "http " + resp.Status()
		if body, ok := resp.Error().(*models.PairRate); ok && body.ErrorType != "" {
			errorType = body.ErrorType
		}
		logrus.WithFields(logrus.Fields{"status": resp.StatusCode(), "error_type": errorType}).Error("Ошибка при получении курса")
		return models.PairRate{}, errors.Wrapf(ErrRateRejected, "%s/%s: %s", base, target, errorType)
	}

	rate := *resp.Result().(*models.PairRate)
	if rate.Result == "error" {
		return models.PairRate{}, errors.Wrapf(ErrRateRejected, "%s/%s: %s", base, target, rate.ErrorType)
	}
	if rate.ConversionRate == nil {
		return models.PairRate{}, errors.Wrapf(ErrNoRate, "%s/%s", base, target)
	}

	return rate, nil
}

// CachedFetcher отдаёт курс из кэша и идёт в API только при промахе.
type CachedFetcher struct {
	next  Fetcher
	cache cache.RateCache
}

func NewCachedFetcher(next Fetcher, rateCache cache.RateCache) *CachedFetcher {
	return &CachedFetcher{next: next, cache: rateCache}
}

func (f *CachedFetcher) PairRate(ctx context.Context, base, target string) (models.PairRate, error) {
	key := cache.Key(strings.TrimSpace(base), strings.TrimSpace(target))

	rate, found, err := f.cache.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Кэш курсов недоступен")
	}
	if found {
		return rate, nil
	}

	rate, err = f.next.PairRate(ctx, base, target)
	if err != nil {
		return models.PairRate{}, err
	}

	if err := f.cache.Set(ctx, key, rate); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Не удалось сохранить курс в кэш")
	}
	return rate, nil
}
