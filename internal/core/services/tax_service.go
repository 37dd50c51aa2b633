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

// taxService implements the TaxSvcFacade interface
type taxService struct {
	BaseService
	store portsrepo.Store
}

// NewTaxService creates a new tax service.
func NewTaxService(store portsrepo.Store) portssvc.TaxSvcFacade {
	return &taxService{store: store}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

func (s *taxService) CreateRevision(ctx context.Context, req dto.CreateTaxRevisionRequest, creatorUserID string) (*domain.TaxRevision, error) {
	rev := domain.TaxRevision{
		RevisionID:    uuid.NewString(),
		Version:       strings.TrimSpace(req.Version),
		Country:       strings.TrimSpace(req.Country),
		DateEffective: req.DateEffective.UTC(),
		AuditFields:   domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.store.SaveRevision(ctx, rev); err != nil {
		s.LogError(ctx, err, "Failed to save tax revision", slog.String("version", rev.Version))
		return nil, fmt.Errorf("failed to create tax revision: %w", err)
	}
	s.LogInfo(ctx, "Tax revision created", slog.String("revision_id", rev.RevisionID))
	return &rev, nil
}

func (s *taxService) CreateContribution(ctx context.Context, req dto.CreateTaxContributionRequest, creatorUserID string) (*domain.TaxContribution, error) {
	period, err := domain.ParsePayPeriod(req.Period)
	if err != nil {
		return nil, err
	}
	calc, err := calculationFromRequest(req)
	if err != nil {
		return nil, err
	}

	if req.RevisionID != "" {
		if _, err := s.store.FindRevisionByID(ctx, req.RevisionID); err != nil {
			return nil, fmt.Errorf("%w: tax revision %s: %v", apperrors.ErrValidation, req.RevisionID, err)
		}
	} else if req.Mandatory {
		return nil, fmt.Errorf("%w: mandatory contributions belong to a tax revision", apperrors.ErrValidation)
	}

	tax := domain.TaxContribution{
		ContributionID: uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Type:           domain.TaxType(req.Type),
		RevisionID:     req.RevisionID,
		Period:         period,
		PayBy:          domain.PayBy(req.PayBy),
		TakenFrom:      domain.IncomeType(strings.ToUpper(req.TakenFrom)),
		Currency:       strings.ToUpper(req.CurrencyCode),
		Mandatory:      req.Mandatory,
		Active:         true,
		AccountID:      req.AccountID,
		Calculation:    calc,
		AuditFields:    domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := tax.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.SaveContribution(ctx, tax); err != nil {
		s.LogError(ctx, err, "Failed to save tax contribution", slog.String("name", tax.Name))
		return nil, fmt.Errorf("failed to create tax contribution: %w", err)
	}
	s.LogInfo(ctx, "Tax contribution created",
		slog.String("contribution_id", tax.ContributionID),
		slog.String("mode", string(tax.Mode())))
	return &tax, nil
}

func calculationFromRequest(req dto.CreateTaxContributionRequest) (domain.TaxCalculation, error) {
	switch domain.CalcMode(req.Mode) {
	case domain.CalcFixed:
		if req.FixedValue == nil {
			return nil, fmt.Errorf("%w: fixedValue is required for FIXED contributions", apperrors.ErrValidation)
		}
		return domain.FixedAmount{Value: *req.FixedValue}, nil
	case domain.CalcPercentage:
		if req.PercentRate == nil {
			return nil, fmt.Errorf("%w: percentRate is required for PERCENTAGE contributions", apperrors.ErrValidation)
		}
		return domain.Percentage{Rate: *req.PercentRate}, nil
	case domain.CalcRuleBased:
		clauses := make([]domain.Clause, len(req.Clauses))
		for i, c := range req.Clauses {
			clauses[i] = domain.Clause{
				LineNum:    c.LineNum,
				Start:      c.Start,
				End:        c.End,
				ExcessOver: c.ExcessOver,
				Percent:    c.Percent,
				Addition:   c.Addition,
			}
		}
		return domain.RuleBased{Clauses: clauses}, nil
	}
	return nil, fmt.Errorf("%w: unknown calculation mode %q", apperrors.ErrValidation, req.Mode)
}

func (s *taxService) OptIn(ctx context.Context, contributionID string, req dto.OptInRequest) (*domain.EmployeeTaxOptIn, error) {
	tax, err := s.store.FindContributionByID(ctx, contributionID)
	if err != nil {
		return nil, err
	}
	if tax.Mandatory {
		return nil, fmt.Errorf("%w: contribution %s is mandatory and applies to every line", apperrors.ErrValidation, contributionID)
	}
	if _, err := s.store.FindEmployeeByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	optIn := domain.EmployeeTaxOptIn{
		EmployeeID:     req.EmployeeID,
		ContributionID: contributionID,
		Active:         req.Active == nil || *req.Active,
	}
	if err := s.store.SaveOptIn(ctx, optIn); err != nil {
		s.LogError(ctx, err, "Failed to save tax opt in",
			slog.String("contribution_id", contributionID),
			slog.String("employee_id", req.EmployeeID))
		return nil, fmt.Errorf("failed to save opt in: %w", err)
	}
	s.LogInfo(ctx, "Tax opt in saved",
		slog.String("contribution_id", contributionID),
		slog.String("employee_id", req.EmployeeID),
		slog.Bool("active", optIn.Active))
	return &optIn, nil
}
