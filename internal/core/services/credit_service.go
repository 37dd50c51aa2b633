package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/google/uuid"
)

// creditService implements the CreditSvcFacade interface
type creditService struct {
	BaseService
	store portsrepo.Store
}

// NewCreditService creates a new credit service.
func NewCreditService(store portsrepo.Store) portssvc.CreditSvcFacade {
	return &creditService{store: store}
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

func (s *creditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest, creatorUserID string) (*domain.Credit, error) {
	now := s.Now()
	credit := domain.Credit{
		CreditID:         uuid.NewString(),
		EmployeeID:       req.EmployeeID,
		Item:             strings.TrimSpace(req.Item),
		Principal:        domain.NewMoney(req.Amount, strings.ToUpper(req.CurrencyCode)),
		InterestRate:     req.InterestRate,
		Date:             req.Date.UTC(),
		PaymentStartDate: req.PaymentStartDate.UTC(),
		AccountID:        req.AccountID,
		AuditFields:      domain.NewAuditFields(creatorUserID, now),
	}
	if err := credit.Validate(now); err != nil {
		return nil, err
	}

	if _, err := s.store.FindEmployeeByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}
	if err := s.store.SaveCredit(ctx, credit); err != nil {
		s.LogError(ctx, err, "Failed to save credit", slog.String("employee_id", req.EmployeeID))
		return nil, fmt.Errorf("failed to create credit: %w", err)
	}

	s.LogInfo(ctx, "Credit created",
		slog.String("credit_id", credit.CreditID),
		slog.String("employee_id", credit.EmployeeID),
		slog.String("amount", credit.Principal.String()))
	return &credit, nil
}

func (s *creditService) AddPlan(ctx context.Context, creditID string, req dto.CreatePaymentPlanRequest, creatorUserID string) (*domain.PaymentPlan, error) {
	credit, err := s.store.FindCreditByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if credit.Completed {
		return nil, fmt.Errorf("%w: credit %s is already recovered", apperrors.ErrValidation, creditID)
	}

	status := domain.PlanActive
	if req.Status != "" {
		status = domain.PlanStatus(req.Status)
	}
	plan := domain.PaymentPlan{
		PlanID:      uuid.NewString(),
		CreditID:    creditID,
		Name:        strings.TrimSpace(req.Name),
		DeductFrom:  domain.IncomeType(req.DeductFrom),
		Percent:     req.Percent,
		Status:      status,
		AuditFields: domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.SavePlan(ctx, plan); err != nil {
		s.LogError(ctx, err, "Failed to save payment plan", slog.String("credit_id", creditID))
		return nil, fmt.Errorf("failed to create payment plan: %w", err)
	}
	s.LogInfo(ctx, "Payment plan created",
		slog.String("credit_id", creditID),
		slog.String("plan_id", plan.PlanID),
		slog.String("status", string(plan.Status)))
	return &plan, nil
}

func (s *creditService) GetCredit(ctx context.Context, creditID string) (*dto.CreditResponse, error) {
	credit, err := s.store.FindCreditByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	plans, err := s.store.ListPlansByCredit(ctx, creditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment plans: %w", err)
	}
	history, err := s.store.PaymentHistory(ctx, []string{creditID}, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load payment history: %w", err)
	}
	balance, err := credit.Balance(history[creditID])
	if err != nil {
		s.LogError(ctx, err, "Failed to derive credit balance", slog.String("credit_id", creditID))
		return nil, err
	}

	resp := dto.ToCreditResponse(credit, plans, balance)
	return &resp, nil
}
