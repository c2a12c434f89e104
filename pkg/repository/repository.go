package repository

import (
	"context"

	"currency_agent_back/models"

	"github.com/jmoiron/sqlx"
)

type Conversions interface {
	Save(ctx context.Context, record models.ConversionRecord) (int64, error)
	List(ctx context.Context, limit int) ([]models.ConversionRecord, error)
}

type Repository struct {
	Conversions
}

// NewRepository без базы возвращает заглушку: история просто не пишется.
func NewRepository(db *sqlx.DB) *Repository {
	if db == nil {
		return &Repository{Conversions: NopConversions{}}
	}
	return &Repository{
		Conversions: NewConversionPostgres(db),
	}
}
