package service

import (
	"context"

	"currency_agent_back/models"
	"currency_agent_back/pkg/repository"
	"currency_agent_back/pkg/tools"

	"github.com/tmc/langchaingo/llms"
)

type Converter interface {
	Convert(ctx context.Context, req models.ConversionRequest) (models.ConversionResponse, error)
}

type History interface {
	Recent(ctx context.Context, limit int) ([]models.ConversionRecord, error)
}

type Service struct {
	Converter
	History
}

func NewService(repos *repository.Repository, model llms.Model, registry *tools.Registry, opts AgentOptions) *Service {
	return &Service{
		Converter: NewConversionService(model, registry, repos.Conversions, opts),
		History:   NewHistoryService(repos.Conversions),
	}
}
