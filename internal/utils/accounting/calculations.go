package accounting

import (
	"fmt"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount returns the posting as a single signed figure, debit positive.
func SignedAmount(p domain.Posting) (decimal.Decimal, error) {
	debit, credit := p.DebitAmount, p.CreditAmount
	if debit.IsNegative() || credit.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: posting %s has a negative side", apperrors.ErrUnbalancedPostings, p.PostingID)
	}
	if debit.IsPositive() == credit.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: posting %s must carry exactly one of debit or credit", apperrors.ErrUnbalancedPostings, p.PostingID)
	}
	return debit.Sub(credit), nil
}

// ValidatePostingBalance checks that the postings of a journal balance to zero.
func ValidatePostingBalance(postings []domain.Posting) error {
	if len(postings) < 2 {
		return fmt.Errorf("%w: journal must have at least two postings", apperrors.ErrUnbalancedPostings)
	}

	sum := decimal.Zero
	for _, p := range postings {
		if p.AccountID == "" {
			return fmt.Errorf("%w: posting %s has no account", apperrors.ErrUnbalancedPostings, p.PostingID)
		}
		signed, err := SignedAmount(p)
		if err != nil {
			return err
		}
		sum = sum.Add(signed)
	}

	if !sum.IsZero() {
		return fmt.Errorf("%w: postings do not balance to zero: sum is %s", apperrors.ErrUnbalancedPostings, sum.String())
	}
	return nil
}
