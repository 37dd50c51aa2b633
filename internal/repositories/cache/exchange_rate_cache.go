// Package cache keeps hot read paths of the store in redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	"github.com/SscSPs/payroll_engine/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const exchangeRateKeyPrefix = "fx"

// ExchangeRateCache fronts an exchange rate repository with a read-through redis cache.
// Redis failures degrade to reading the repository directly.
type ExchangeRateCache struct {
	next   repositories.ExchangeRateRepositoryFacade
	client *redis.Client
	ttl    time.Duration
}

var _ repositories.ExchangeRateRepositoryFacade = (*ExchangeRateCache)(nil)

// NewExchangeRateCache wraps next. A nil client disables caching.
func NewExchangeRateCache(next repositories.ExchangeRateRepositoryFacade, client *redis.Client, ttl time.Duration) *ExchangeRateCache {
	return &ExchangeRateCache{next: next, client: client, ttl: ttl}
}

func exchangeRateKey(foreignCurrency, localCurrency string) string {
	return fmt.Sprintf("%s:%s:%s", exchangeRateKeyPrefix, strings.ToUpper(foreignCurrency), strings.ToUpper(localCurrency))
}

// FindExchangeRate returns the cached latest rate for the pair, loading it on a miss.
func (c *ExchangeRateCache) FindExchangeRate(ctx context.Context, foreignCurrency, localCurrency string) (*domain.ExchangeRate, error) {
	if c.client == nil {
		return c.next.FindExchangeRate(ctx, foreignCurrency, localCurrency)
	}
	key := exchangeRateKey(foreignCurrency, localCurrency)
	logger := middleware.GetLoggerFromCtx(ctx)

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rate domain.ExchangeRate
		if err := json.Unmarshal(payload, &rate); err == nil {
			return &rate, nil
		}
		logger.Warn("Discarding undecodable cached exchange rate", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		logger.Warn("Exchange rate cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	rate, err := c.next.FindExchangeRate(ctx, foreignCurrency, localCurrency)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(rate)
	if err != nil {
		return nil, fmt.Errorf("encode exchange rate: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn("Exchange rate cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return rate, nil
}

// SaveExchangeRate stores the rate and drops the cached entry for its pair.
func (c *ExchangeRateCache) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	if err := c.next.SaveExchangeRate(ctx, rate); err != nil {
		return err
	}
	if c.client == nil {
		return nil
	}
	key := exchangeRateKey(rate.Foreign.Currency, rate.Local.Currency)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Exchange rate cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}
