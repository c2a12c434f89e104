// Package llm собирает чат-модель с поддержкой tool calling.
// Groq отдаёт OpenAI-совместимый API, поэтому используется клиент openai из langchaingo.
package llm

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
)

type Config struct {
	BaseURL string
	Token   string
	Model   string
	Timeout time.Duration
}

func New(cfg Config) (llms.Model, error) {
	if cfg.Token == "" {
		return nil, errors.New("llm api token is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	model, err := openai.New(
		openai.WithToken(cfg.Token),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, errors.Wrap(err, "init openai-compatible client")
	}
	return model, nil
}
