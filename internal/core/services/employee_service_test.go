package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/core/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/SscSPs/payroll_engine/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

type EmployeeServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	service  portssvc.EmployeeSvcFacade
	employee *domain.Employee
}

func (suite *EmployeeServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.service = services.NewEmployeeService(suite.store)

	employee, err := suite.service.CreateEmployee(suite.ctx, dto.CreateEmployeeRequest{Name: "  Ana Lopez "}, operator)
	suite.Require().NoError(err)
	suite.employee = employee
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee() {
	suite.Equal("Ana Lopez", suite.employee.Name)
	suite.True(suite.employee.Active)

	_, err := suite.service.CreateEmployee(suite.ctx, dto.CreateEmployeeRequest{Name: "   "}, operator)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EmployeeServiceTestSuite) TestAddPosition() {
	position, err := suite.service.AddPosition(suite.ctx, suite.employee.EmployeeID, dto.CreatePositionRequest{
		Title:    "Engineer",
		WageType: "SALARIED",
		Wage:     dto.IncomeRequest{Period: "MONTHLY", Amount: dec("3000"), CurrencyCode: "usd"},
		OtherEarnings: []dto.IncomeRequest{
			{Period: "MONTHLY", Amount: dec("150"), CurrencyCode: "USD"},
		},
	}, operator)

	suite.Require().NoError(err)
	suite.Equal(domain.PositionCurrent, position.State)
	suite.Equal("USD", position.Negotiated.Money.Currency)
	suite.Equal(domain.Monthly, position.Negotiated.Period)
	suite.Len(position.OtherEarnings, 1)
	suite.True(position.IsPayable())
}

func (suite *EmployeeServiceTestSuite) TestAddPosition_Validation() {
	base := dto.CreatePositionRequest{
		Title:    "Engineer",
		WageType: "SALARIED",
		Wage:     dto.IncomeRequest{Period: "MONTHLY", Amount: dec("0.5"), CurrencyCode: "USD"},
	}
	_, err := suite.service.AddPosition(suite.ctx, suite.employee.EmployeeID, base, operator)
	suite.ErrorIs(err, apperrors.ErrValidation, "below the minimum wage")

	base.Wage.Amount = dec("100")
	base.OtherEarnings = []dto.IncomeRequest{{Period: "MONTHLY", Amount: dec("-5"), CurrencyCode: "USD"}}
	_, err = suite.service.AddPosition(suite.ctx, suite.employee.EmployeeID, base, operator)
	suite.ErrorIs(err, apperrors.ErrValidation)

	base.OtherEarnings = nil
	base.Wage.Period = "FORTNIGHTLY"
	_, err = suite.service.AddPosition(suite.ctx, suite.employee.EmployeeID, base, operator)
	suite.ErrorIs(err, apperrors.ErrValidation)

	base.Wage.Period = "MONTHLY"
	_, err = suite.service.AddPosition(suite.ctx, "ghost", base, operator)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EmployeeServiceTestSuite) TestAddBankAccount() {
	account, err := suite.service.AddBankAccount(suite.ctx, suite.employee.EmployeeID, dto.CreateBankAccountRequest{
		LedgerAccountID: "bank-ana", AccountNumber: " 0001-22 ", Current: true,
	}, operator)
	suite.Require().NoError(err)
	suite.Equal("0001-22", account.AccountNumber)
	suite.True(account.Active)

	accounts, err := suite.store.ListBankAccountsByEmployees(suite.ctx, []string{suite.employee.EmployeeID})
	suite.Require().NoError(err)
	current, err := domain.CurrentBankAccount(accounts[suite.employee.EmployeeID])
	suite.Require().NoError(err)
	suite.Equal(account.BankAccountID, current.BankAccountID)

	_, err = suite.service.AddBankAccount(suite.ctx, "ghost", dto.CreateBankAccountRequest{LedgerAccountID: "x", AccountNumber: "1"}, operator)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EmployeeServiceTestSuite) TestAddTimeSheetEntry() {
	at := func(h int) time.Time { return time.Date(2026, 3, 10, h, 0, 0, 0, time.UTC) }
	breakStart, breakEnd := at(12), at(13)

	entry, err := suite.service.AddTimeSheetEntry(suite.ctx, suite.employee.EmployeeID, dto.CreateTimeSheetEntryRequest{
		Date: at(0), ClockIn: at(8), ClockOut: at(17), BreakStart: &breakStart, BreakEnd: &breakEnd,
	})
	suite.Require().NoError(err)
	suite.True(dec("8").Equal(entry.WorkedHours()), "got %s", entry.WorkedHours())

	_, err = suite.service.AddTimeSheetEntry(suite.ctx, suite.employee.EmployeeID, dto.CreateTimeSheetEntryRequest{
		Date: at(0), ClockIn: at(17), ClockOut: at(8),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.AddTimeSheetEntry(suite.ctx, suite.employee.EmployeeID, dto.CreateTimeSheetEntryRequest{
		Date: at(0), ClockIn: at(8), ClockOut: at(17), BreakStart: &breakStart,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	entries, err := suite.store.ListTimeSheetEntries(suite.ctx, suite.employee.EmployeeID, at(0), at(0))
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func TestEmployeeService(t *testing.T) {
	suite.Run(t, new(EmployeeServiceTestSuite))
}
