package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeService) AddPosition(ctx context.Context, employeeID string, req dto.CreatePositionRequest, creatorUserID string) (*domain.EmployeePosition, error) {
	args := m.Called(ctx, employeeID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeePosition), args.Error(1)
}
func (m *MockEmployeeService) AddBankAccount(ctx context.Context, employeeID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, employeeID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockEmployeeService) AddTimeSheetEntry(ctx context.Context, employeeID string, req dto.CreateTimeSheetEntryRequest) (*domain.TimeSheetEntry, error) {
	args := m.Called(ctx, employeeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSheetEntry), args.Error(1)
}

type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) CreateRevision(ctx context.Context, req dto.CreateTaxRevisionRequest, creatorUserID string) (*domain.TaxRevision, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRevision), args.Error(1)
}
func (m *MockTaxService) CreateContribution(ctx context.Context, req dto.CreateTaxContributionRequest, creatorUserID string) (*domain.TaxContribution, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxContribution), args.Error(1)
}
func (m *MockTaxService) OptIn(ctx context.Context, contributionID string, req dto.OptInRequest) (*domain.EmployeeTaxOptIn, error) {
	args := m.Called(ctx, contributionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeeTaxOptIn), args.Error(1)
}

type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest, creatorUserID string) (*domain.Credit, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}
func (m *MockCreditService) AddPlan(ctx context.Context, creditID string, req dto.CreatePaymentPlanRequest, creatorUserID string) (*domain.PaymentPlan, error) {
	args := m.Called(ctx, creditID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPlan), args.Error(1)
}
func (m *MockCreditService) GetCredit(ctx context.Context, creditID string) (*dto.CreditResponse, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreditResponse), args.Error(1)
}

var (
	_ portssvc.EmployeeSvcFacade = (*MockEmployeeService)(nil)
	_ portssvc.TaxSvcFacade      = (*MockTaxService)(nil)
	_ portssvc.CreditSvcFacade   = (*MockCreditService)(nil)
)

type MasterDataHandlerTestSuite struct {
	handlerSuite
	employees *MockEmployeeService
	taxes     *MockTaxService
	credits   *MockCreditService
	router    *gin.Engine
}

func (suite *MasterDataHandlerTestSuite) SetupTest() {
	suite.employees = new(MockEmployeeService)
	suite.taxes = new(MockTaxService)
	suite.credits = new(MockCreditService)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Employee: suite.employees,
		Tax:      suite.taxes,
		Credit:   suite.credits,
	})
}

func (suite *MasterDataHandlerTestSuite) TearDownTest() {
	suite.employees.AssertExpectations(suite.T())
	suite.taxes.AssertExpectations(suite.T())
	suite.credits.AssertExpectations(suite.T())
}

func (suite *MasterDataHandlerTestSuite) TestCreateEmployee() {
	suite.employees.On("CreateEmployee", mock.Anything, dto.CreateEmployeeRequest{Name: "Ana"}, testOperator).
		Return(&domain.Employee{EmployeeID: "emp-1", Name: "Ana", Active: true}, nil).Once()

	w := suite.do(suite.router, http.MethodPost, "/api/v1/employees", dto.CreateEmployeeRequest{Name: "Ana"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EmployeeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("emp-1", resp.EmployeeID)
	suite.True(resp.Active)
}

func (suite *MasterDataHandlerTestSuite) TestAddPosition_ValidationError() {
	suite.employees.On("AddPosition", mock.Anything, "emp-1", mock.Anything, testOperator).
		Return(nil, apperrors.NewValidationError("wage is below the minimum wage")).Once()

	w := suite.do(suite.router, http.MethodPost, "/api/v1/employees/emp-1/positions", map[string]any{
		"title":    "Clerk",
		"wageType": "SALARIED",
		"wage":     map[string]any{"period": "MONTHLY", "amount": "10", "currencyCode": "USD"},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w).Error, "minimum wage")
}

func (suite *MasterDataHandlerTestSuite) TestOptIn_UnknownContribution() {
	suite.taxes.On("OptIn", mock.Anything, "tax-x", mock.MatchedBy(func(req dto.OptInRequest) bool {
		return req.EmployeeID == "emp-1"
	})).Return(nil, apperrors.NewNotFoundError("contribution tax-x")).Once()

	w := suite.do(suite.router, http.MethodPost, "/api/v1/taxes/tax-x/opt-ins", dto.OptInRequest{EmployeeID: "emp-1"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *MasterDataHandlerTestSuite) TestCreateCredit_ReturnsBalance() {
	suite.credits.On("CreateCredit", mock.Anything, mock.Anything, testOperator).
		Return(&domain.Credit{CreditID: "cr-1"}, nil).Once()
	suite.credits.On("GetCredit", mock.Anything, "cr-1").
		Return(&dto.CreditResponse{CreditID: "cr-1", Balance: decimal.NewFromInt(1100)}, nil).Once()

	w := suite.do(suite.router, http.MethodPost, "/api/v1/credits", map[string]any{
		"employeeID":       "emp-1",
		"item":             "Laptop",
		"amount":           "1000",
		"currencyCode":     "USD",
		"interestRate":     "0.1",
		"date":             "2026-01-01T00:00:00Z",
		"paymentStartDate": "2026-02-01T00:00:00Z",
		"accountID":        "acc-loans",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CreditResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("cr-1", resp.CreditID)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(1100)))
}

func (suite *MasterDataHandlerTestSuite) TestAddPlan_RejectsDeductFrom() {
	w := suite.do(suite.router, http.MethodPost, "/api/v1/credits/cr-1/plans", map[string]any{
		"name":       "Monthly",
		"deductFrom": "TAKE_HOME",
		"percent":    "0.05",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.credits.AssertNotCalled(suite.T(), "AddPlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMasterDataHandler(t *testing.T) {
	suite.Run(t, new(MasterDataHandlerTestSuite))
}
