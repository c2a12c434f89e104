package rateclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"currency_agent_back/models"
	"currency_agent_back/pkg/cache"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &path
}

func TestExchangeRateClient_PairRate(t *testing.T) {
	srv, path := newRateServer(t, http.StatusOK, `{
		"result": "success",
		"base_code": "USD",
		"target_code": "PKR",
		"conversion_rate": 278.5,
		"time_last_update_unix": 1717200001
	}`)

	client := NewExchangeRateClient(srv.URL, "secret", time.Second)
	rate, err := client.PairRate(context.Background(), "usd", "pkr")
	require.NoError(t, err)

	assert.Equal(t, "/secret/pair/USD/PKR", *path)
	require.NotNil(t, rate.ConversionRate)
	assert.Equal(t, 278.5, *rate.ConversionRate)
	assert.Equal(t, "PKR", rate.TargetCode)
}

func TestExchangeRateClient_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "error result with 200", status: http.StatusOK, body: `{"result":"error","error-type":"unsupported-code"}`, want: "unsupported-code"},
		{name: "error status", status: http.StatusForbidden, body: `{"result":"error","error-type":"invalid-key"}`, want: "invalid-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newRateServer(t, tt.status, tt.body)
			client := NewExchangeRateClient(srv.URL, "secret", time.Second)

			_, err := client.PairRate(context.Background(), "USD", "XXX")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRateRejected))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExchangeRateClient_MissingRate(t *testing.T) {
	srv, _ := newRateServer(t, http.StatusOK, `{"result":"success","base_code":"USD"}`)
	client := NewExchangeRateClient(srv.URL, "secret", time.Second)

	_, err := client.PairRate(context.Background(), "USD", "PKR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRate))
}

type countingFetcher struct {
	calls int
	rate  float64
	err   error
}

func (f *countingFetcher) PairRate(_ context.Context, base, target string) (models.PairRate, error) {
	f.calls++
	if f.err != nil {
		return models.PairRate{}, f.err
	}
	rate := f.rate
	return models.PairRate{Result: "success", BaseCode: base, TargetCode: target, ConversionRate: &rate}, nil
}

func TestCachedFetcher(t *testing.T) {
	ctx := context.Background()
	next := &countingFetcher{rate: 0.92}
	fetcher := NewCachedFetcher(next, cache.NewMemoryRateCache(time.Minute))

	first, err := fetcher.PairRate(ctx, "USD", "EUR")
	require.NoError(t, err)
	second, err := fetcher.PairRate(ctx, "usd", "eur")
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, *first.ConversionRate, *second.ConversionRate)
}

func TestCachedFetcher_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := &countingFetcher{err: errors.Wrap(ErrRateRejected, "USD/XXX: unsupported-code")}
	fetcher := NewCachedFetcher(next, cache.NewMemoryRateCache(time.Minute))

	_, err := fetcher.PairRate(ctx, "USD", "XXX")
	require.Error(t, err)
	_, err = fetcher.PairRate(ctx, "USD", "XXX")
	require.Error(t, err)
	assert.Equal(t, 2, next.calls)
}
