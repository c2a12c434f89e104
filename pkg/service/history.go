package service

import (
	"context"

	"currency_agent_back/models"
	"currency_agent_back/pkg/repository"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type HistoryService struct {
	repos repository.Conversions
}

func NewHistoryService(repos repository.Conversions) *HistoryService {
	return &HistoryService{repos: repos}
}

func (s *HistoryService) Recent(ctx context.Context, limit int) ([]models.ConversionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.repos.List(ctx, limit)
}
