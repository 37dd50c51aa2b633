package dto

import (
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest quotes one unit of FromCurrencyCode as Rate units of ToCurrencyCode.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	DateEffective    time.Time       `json:"dateEffective" binding:"required"`
}

// ExchangeRateResponse is a stored quote. InverseRate converts ToCurrencyCode back to FromCurrencyCode.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID,omitempty"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	InverseRate      decimal.Decimal `json:"inverseRate"`
	DateEffective    time.Time       `json:"dateEffective"`
	CreatedBy        string          `json:"createdBy,omitempty"`
	CreatedAt        *time.Time      `json:"createdAt,omitempty"`
}

func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	resp := ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.Foreign.Currency,
		ToCurrencyCode:   rate.Local.Currency,
		Rate:             rate.Rate(),
		DateEffective:    rate.DateEffective,
		CreatedBy:        rate.CreatedBy,
	}
	if !resp.Rate.IsZero() {
		resp.InverseRate = rate.Inverted().Rate().Round(decimalPlacesInverse)
	}
	// Run level rates are not persisted on their own and carry no audit stamp
	if !rate.CreatedAt.IsZero() {
		created := rate.CreatedAt
		resp.CreatedAt = &created
	}
	return resp
}

const decimalPlacesInverse = 8
