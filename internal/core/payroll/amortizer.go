package payroll

import (
	"sync"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// Installment is what a plan owes on the current run.
type Installment struct {
	Amount domain.Money
	// Settles is true when the installment brings the credit balance to zero.
	Settles bool
}

// DeductionAmortizer computes plan installments from a credit's payment history.
type DeductionAmortizer struct{}

// NextInstallment returns the installment due for plan, or ok=false when nothing is due.
// settled reports that the credit has nothing left to recover, including when the
// returned installment is the final one. The balance is recomputed from payments on
// every call.
func (DeductionAmortizer) NextInstallment(credit domain.Credit, plan domain.PaymentPlan, payments []domain.Money) (inst Installment, ok bool, settled bool, err error) {
	if credit.Completed {
		return Installment{}, false, true, nil
	}
	balance, err := credit.Balance(payments)
	if err != nil {
		return Installment{}, false, false, err
	}
	if !balance.IsPositive() {
		return Installment{}, false, true, nil
	}
	if plan.Status != domain.PlanActive {
		return Installment{}, false, false, nil
	}

	value := credit.Principal.Mul(plan.Percent).Round()
	if value.Amount.GreaterThanOrEqual(balance.Amount) {
		return Installment{Amount: balance.Round(), Settles: true}, true, true, nil
	}
	return Installment{Amount: value}, true, false, nil
}

// InstallmentBook holds the payment snapshot of a run and serializes installment
// reservations per credit, so two lines touching the same credit cannot both spend the
// same remaining balance.
type InstallmentBook struct {
	amortizer DeductionAmortizer

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	history map[string][]domain.Money
}

// NewInstallmentBook builds a book from the prior payments of each credit, keyed by credit ID.
// The snapshot must be taken once, inside the transaction that will store the results.
func NewInstallmentBook(prior map[string][]domain.Money) *InstallmentBook {
	history := make(map[string][]domain.Money, len(prior))
	for creditID, payments := range prior {
		history[creditID] = append([]domain.Money(nil), payments...)
	}
	return &InstallmentBook{locks: make(map[string]*sync.Mutex), history: history}
}

func (b *InstallmentBook) lockFor(creditID string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.locks[creditID]
	if !ok {
		l = &sync.Mutex{}
		b.locks[creditID] = l
	}
	return l
}

// Reserve computes the next installment for plan and records it against the credit.
// A manual amount replaces the computed installment but is capped at the balance. It
// applies whatever the plan status; callers drop plans that take no manual installments.
func (b *InstallmentBook) Reserve(cp domain.CreditPlan, manual *domain.Money) (Installment, bool, bool, error) {
	l := b.lockFor(cp.Credit.CreditID)
	l.Lock()
	defer l.Unlock()

	payments := b.payments(cp.Credit.CreditID)
	inst, ok, settled, err := b.amortizer.NextInstallment(cp.Credit, cp.Plan, payments)
	if err != nil {
		return Installment{}, false, false, err
	}

	if manual != nil && !cp.Credit.Completed {
		balance, err := cp.Credit.Balance(payments)
		if err != nil {
			return Installment{}, false, false, err
		}
		if !balance.IsPositive() {
			return Installment{}, false, true, nil
		}
		amount := *manual
		if amount.Amount.GreaterThanOrEqual(balance.Amount) {
			inst, ok, settled = Installment{Amount: balance.Round(), Settles: true}, true, true
		} else {
			inst, ok, settled = Installment{Amount: amount}, true, false
		}
	}

	if ok {
		b.record(cp.Credit.CreditID, inst.Amount)
	}
	return inst, ok, settled, nil
}

func (b *InstallmentBook) payments(creditID string) []domain.Money {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Money(nil), b.history[creditID]...)
}

func (b *InstallmentBook) record(creditID string, amount domain.Money) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history[creditID] = append(b.history[creditID], amount)
}
