package dto_test

import (
	"testing"
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToExchangeRateResponse(t *testing.T) {
	effective := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	rate := domain.NewExchangeRate("USD", "HNL", decimal.RequireFromString("24.5"), effective)

	resp := dto.ToExchangeRateResponse(&rate)

	assert.Equal(t, "USD", resp.FromCurrencyCode)
	assert.Equal(t, "HNL", resp.ToCurrencyCode)
	assert.True(t, decimal.RequireFromString("24.5").Equal(resp.Rate))
	assert.True(t, decimal.RequireFromString("0.04081633").Equal(resp.InverseRate), resp.InverseRate.String())
	assert.Nil(t, resp.CreatedAt, "unsaved rates carry no audit stamp")

	rate.AuditFields = domain.NewAuditFields("op-1", effective)
	resp = dto.ToExchangeRateResponse(&rate)
	if assert.NotNil(t, resp.CreatedAt) {
		assert.Equal(t, effective, *resp.CreatedAt)
	}
	assert.Equal(t, "op-1", resp.CreatedBy)
}
