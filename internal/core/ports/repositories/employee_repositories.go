package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// EmployeeReader defines read operations for employees and what hangs off them
type EmployeeReader interface {
	// FindEmployeeByID retrieves a specific employee by its unique identifier.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindPositionByID retrieves a specific position by its unique identifier.
	FindPositionByID(ctx context.Context, positionID string) (*domain.EmployeePosition, error)

	// FindPositionsByIDs retrieves multiple positions keyed by ID.
	FindPositionsByIDs(ctx context.Context, positionIDs []string) (map[string]domain.EmployeePosition, error)

	// ListBankAccountsByEmployees retrieves bank accounts grouped by employee ID.
	ListBankAccountsByEmployees(ctx context.Context, employeeIDs []string) (map[string][]domain.BankAccount, error)

	// ListTimeSheetEntries retrieves an employee's entries dated within [from, to].
	ListTimeSheetEntries(ctx context.Context, employeeID string, from, to time.Time) ([]domain.TimeSheetEntry, error)
}

// EmployeeWriter defines write operations for employees and what hangs off them
type EmployeeWriter interface {
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	SavePosition(ctx context.Context, position domain.EmployeePosition) error
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	SaveTimeSheetEntry(ctx context.Context, entry domain.TimeSheetEntry) error
}

// EmployeeRepositoryFacade combines all employee repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
