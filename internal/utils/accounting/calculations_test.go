package accounting

import (
	"testing"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func debit(account string, v int64) domain.Posting {
	return domain.Posting{AccountID: account, DebitAmount: decimal.NewFromInt(v)}
}

func credit(account string, v int64) domain.Posting {
	return domain.Posting{AccountID: account, CreditAmount: decimal.NewFromInt(v)}
}

func TestValidatePostingBalance(t *testing.T) {
	tests := []struct {
		name     string
		postings []domain.Posting
		wantErr  bool
	}{
		{"balanced pair", []domain.Posting{debit("bank", 100), credit("funding", 100)}, false},
		{"balanced split", []domain.Posting{debit("a", 60), debit("b", 40), credit("funding", 100)}, false},
		{"unbalanced", []domain.Posting{debit("bank", 100), credit("funding", 90)}, true},
		{"single posting", []domain.Posting{debit("bank", 100)}, true},
		{"both sides set", []domain.Posting{
			{AccountID: "x", DebitAmount: decimal.NewFromInt(5), CreditAmount: decimal.NewFromInt(5)},
			debit("bank", 1), credit("funding", 1),
		}, true},
		{"zero posting", []domain.Posting{{AccountID: "x"}, debit("bank", 1), credit("funding", 1)}, true},
		{"missing account", []domain.Posting{debit("", 10), credit("funding", 10)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostingBalance(tt.postings)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnbalancedPostings)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSignedAmount(t *testing.T) {
	got, err := SignedAmount(credit("funding", 30))
	assert.NoError(t, err)
	assert.Equal(t, "-30", got.String())
}
