package models

import "time"

const (
	DefaultBaseCurrency   = "USD"
	DefaultTargetCurrency = "PKR"
	DefaultAmount         = 10.0
)

type ConversionRequest struct {
	BaseCurrency   string  `json:"base_currency"`
	TargetCurrency string  `json:"target_currency"`
	Amount         float64 `json:"amount"`
}

// ConversionResponse — ответ POST /convert. Курс и сумма остаются null, если модель не вызвала инструменты.
type ConversionResponse struct {
	Success         bool     `json:"success"`
	BaseCurrency    string   `json:"base_currency"`
	TargetCurrency  string   `json:"target_currency"`
	Amount          float64  `json:"amount"`
	ConversionRate  *float64 `json:"conversion_rate"`
	ConvertedAmount *float64 `json:"converted_amount"`
	AIResponse      string   `json:"ai_response"`
}

type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ConversionRecord struct {
	ID              int64     `db:"id" json:"id"`
	BaseCurrency    string    `db:"base_currency" json:"base_currency"`
	TargetCurrency  string    `db:"target_currency" json:"target_currency"`
	Amount          float64   `db:"amount" json:"amount"`
	ConversionRate  *float64  `db:"conversion_rate" json:"conversion_rate"`
	ConvertedAmount *float64  `db:"converted_amount" json:"converted_amount"`
	AIResponse      string    `db:"ai_response" json:"ai_response"`
	Success         bool      `db:"success" json:"success"`
	Error           string    `db:"error" json:"error,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
