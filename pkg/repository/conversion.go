package repository

import (
	"context"
	"fmt"

	"currency_agent_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type ConversionPostgres struct {
	db *sqlx.DB
}

func NewConversionPostgres(db *sqlx.DB) *ConversionPostgres {
	return &ConversionPostgres{db: db}
}

func (r *ConversionPostgres) Save(ctx context.Context, record models.ConversionRecord) (int64, error) {
	var id int64
	query := fmt.Sprintf(`
        INSERT INTO %s (base_currency, target_currency, amount, conversion_rate, converted_amount, ai_response, success, error)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `, conversionsTable)
	err := r.db.QueryRowContext(ctx, query,
		record.BaseCurrency,
		record.TargetCurrency,
		record.Amount,
		record.ConversionRate,
		record.ConvertedAmount,
		record.AIResponse,
		record.Success,
		record.Error,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert conversion")
	}
	return id, nil
}

func (r *ConversionPostgres) List(ctx context.Context, limit int) ([]models.ConversionRecord, error) {
	records := []models.ConversionRecord{}
	query := fmt.Sprintf(`SELECT id, base_currency, target_currency, amount, conversion_rate, converted_amount,
        ai_response, success, error, created_at FROM %s ORDER BY created_at DESC, id DESC LIMIT $1`, conversionsTable)
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, errors.Wrap(err, "select conversions")
	}
	return records, nil
}

type NopConversions struct{}

func (NopConversions) Save(context.Context, models.ConversionRecord) (int64, error) {
	return 0, nil
}

func (NopConversions) List(context.Context, int) ([]models.ConversionRecord, error) {
	return []models.ConversionRecord{}, nil
}
