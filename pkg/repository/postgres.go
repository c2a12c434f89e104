package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const conversionsTable = "conversions"

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
    id               BIGSERIAL PRIMARY KEY,
    base_currency    TEXT NOT NULL,
    target_currency  TEXT NOT NULL,
    amount           DOUBLE PRECISION NOT NULL,
    conversion_rate  DOUBLE PRECISION,
    converted_amount DOUBLE PRECISION,
    ai_response      TEXT NOT NULL DEFAULT '',
    success          BOOLEAN NOT NULL,
    error            TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	SSLMode  string
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.DBName, c.Password, c.SSLMode)
}

func NewPostgresDB(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

// Migrate создаёт таблицу истории конвертаций, если её ещё нет
func Migrate(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return errors.Wrap(err, "create conversions table")
}
