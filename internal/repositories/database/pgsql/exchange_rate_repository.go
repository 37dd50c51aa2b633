package pgsql

import (
	"context"
	"strings"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
	"github.com/SscSPs/payroll_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const exchangeRateColumns = `exchange_rate_id, foreign_currency_code, local_currency_code, rate, date_effective,
	created_at, created_by, last_updated_at, last_updated_by`

// FindExchangeRate retrieves the most recent rate for the pair.
func (s *Store) FindExchangeRate(ctx context.Context, foreignCurrency, localCurrency string) (*domain.ExchangeRate, error) {
	foreignCurrency = strings.ToUpper(foreignCurrency)
	localCurrency = strings.ToUpper(localCurrency)
	what := "exchange rate " + foreignCurrency + "/" + localCurrency

	rows, err := s.db.Query(ctx, `
		SELECT `+exchangeRateColumns+`
		FROM exchange_rates
		WHERE foreign_currency_code = $1 AND local_currency_code = $2
		ORDER BY date_effective DESC, created_at DESC
		LIMIT 1`,
		foreignCurrency, localCurrency,
	)
	if err != nil {
		return nil, storeError(err, what)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		return nil, storeError(err, what)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (s *Store) findExchangeRatesByIDs(ctx context.Context, ids []string) (map[string]models.ExchangeRate, error) {
	rows, err := s.db.Query(ctx, `SELECT `+exchangeRateColumns+` FROM exchange_rates WHERE exchange_rate_id = ANY($1)`, ids)
	if err != nil {
		return nil, storeError(err, "exchange rates")
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		return nil, storeError(err, "exchange rates")
	}
	out := make(map[string]models.ExchangeRate, len(found))
	for _, m := range found {
		out[m.ExchangeRateID] = m
	}
	return out, nil
}

// SaveExchangeRate inserts a rate. Currency codes are stored upper case.
func (s *Store) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	m.ForeignCurrency = strings.ToUpper(m.ForeignCurrency)
	m.LocalCurrency = strings.ToUpper(m.LocalCurrency)
	if m.ForeignCurrency == m.LocalCurrency {
		return apperrors.NewValidationError("foreign and local currencies cannot be the same")
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO exchange_rates (`+exchangeRateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ExchangeRateID, m.ForeignCurrency, m.LocalCurrency, m.Rate, m.DateEffective,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storeError(err, "exchange rate "+m.ExchangeRateID)
	}
	return nil
}
