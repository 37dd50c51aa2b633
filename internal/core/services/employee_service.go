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

// employeeService implements the EmployeeSvcFacade interface
type employeeService struct {
	BaseService
	store portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(store portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{store: store}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func (s *employeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: employee name is required", apperrors.ErrValidation)
	}
	employee := domain.Employee{
		EmployeeID:  uuid.NewString(),
		Name:        name,
		Active:      true,
		AuditFields: domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.store.SaveEmployee(ctx, employee); err != nil {
		s.LogError(ctx, err, "Failed to save employee")
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	s.LogInfo(ctx, "Employee created", slog.String("employee_id", employee.EmployeeID))
	return &employee, nil
}

func incomeFromRequest(req dto.IncomeRequest) (domain.Income, error) {
	period, err := domain.ParsePayPeriod(req.Period)
	if err != nil {
		return domain.Income{}, err
	}
	return domain.NewIncome(period, domain.NewMoney(req.Amount, strings.ToUpper(req.CurrencyCode))), nil
}

func (s *employeeService) AddPosition(ctx context.Context, employeeID string, req dto.CreatePositionRequest, creatorUserID string) (*domain.EmployeePosition, error) {
	wage, err := incomeFromRequest(req.Wage)
	if err != nil {
		return nil, err
	}
	state := domain.PositionCurrent
	if req.State != "" {
		state = domain.PositionState(req.State)
	}

	position := domain.EmployeePosition{
		PositionID:  uuid.NewString(),
		EmployeeID:  employeeID,
		Title:       strings.TrimSpace(req.Title),
		WageType:    domain.WageType(req.WageType),
		Negotiated:  wage,
		State:       state,
		Active:      true,
		AuditFields: domain.NewAuditFields(creatorUserID, s.Now()),
	}
	for _, e := range req.OtherEarnings {
		income, err := incomeFromRequest(e)
		if err != nil {
			return nil, err
		}
		if !income.Money.IsPositive() {
			return nil, fmt.Errorf("%w: other earnings must be positive", apperrors.ErrValidation)
		}
		position.OtherEarnings = append(position.OtherEarnings, income)
	}
	if err := position.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}
	if err := s.store.SavePosition(ctx, position); err != nil {
		s.LogError(ctx, err, "Failed to save position", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to create position: %w", err)
	}
	s.LogInfo(ctx, "Position created",
		slog.String("employee_id", employeeID),
		slog.String("position_id", position.PositionID),
		slog.String("wage_type", string(position.WageType)))
	return &position, nil
}

func (s *employeeService) AddBankAccount(ctx context.Context, employeeID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	if _, err := s.store.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}
	account := domain.BankAccount{
		BankAccountID:   uuid.NewString(),
		EmployeeID:      employeeID,
		LedgerAccountID: req.LedgerAccountID,
		AccountNumber:   strings.TrimSpace(req.AccountNumber),
		Current:         req.Current,
		Active:          true,
		AuditFields:     domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.store.SaveBankAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}
	s.LogInfo(ctx, "Bank account linked",
		slog.String("employee_id", employeeID),
		slog.String("bank_account_id", account.BankAccountID),
		slog.Bool("current", account.Current))
	return &account, nil
}

func (s *employeeService) AddTimeSheetEntry(ctx context.Context, employeeID string, req dto.CreateTimeSheetEntryRequest) (*domain.TimeSheetEntry, error) {
	entry := domain.TimeSheetEntry{
		EntryID:    uuid.NewString(),
		EmployeeID: employeeID,
		Date:       req.Date.UTC(),
		ClockIn:    req.ClockIn.UTC(),
		ClockOut:   req.ClockOut.UTC(),
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}
	if err := s.store.SaveTimeSheetEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save time sheet entry", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to record time sheet entry: %w", err)
	}
	s.LogDebug(ctx, "Time sheet entry recorded",
		slog.String("employee_id", employeeID),
		slog.String("worked_hours", entry.WorkedHours().String()))
	return &entry, nil
}
