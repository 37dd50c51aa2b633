package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests related to employees and their positions.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// RegisterEmployeeRoutes registers routes related to employees.
func RegisterEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := &employeeHandler{employeeService: employeeService}

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.POST("/:employee_id/positions", h.addPosition)
		employees.POST("/:employee_id/bank-accounts", h.addBankAccount)
		employees.POST("/:employee_id/timesheets", h.addTimeSheetEntry)
	}
}

// createEmployee godoc
// @Summary Create an employee
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// addPosition godoc
// @Summary Add a position to an employee
// @Description Records base salary, pay period and the other earnings of a position
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Param   position body dto.CreatePositionRequest true "Position details"
// @Success 201 {object} dto.PositionResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Security BearerAuth
// @Router /employees/{employee_id}/positions [post]
func (h *employeeHandler) addPosition(c *gin.Context) {
	var req dto.CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	position, err := h.employeeService.AddPosition(c.Request.Context(), c.Param("employee_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add position")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPositionResponse(position))
}

// addBankAccount godoc
// @Summary Add a bank account to an employee
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Param   account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Security BearerAuth
// @Router /employees/{employee_id}/bank-accounts [post]
func (h *employeeHandler) addBankAccount(c *gin.Context) {
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	account, err := h.employeeService.AddBankAccount(c.Request.Context(), c.Param("employee_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add bank account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// addTimeSheetEntry godoc
// @Summary Record worked time
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Param   entry body dto.CreateTimeSheetEntryRequest true "Timesheet entry"
// @Success 201 {object} dto.TimeSheetEntryResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Security BearerAuth
// @Router /employees/{employee_id}/timesheets [post]
func (h *employeeHandler) addTimeSheetEntry(c *gin.Context) {
	var req dto.CreateTimeSheetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if _, ok := requireUser(c); !ok {
		return
	}

	entry, err := h.employeeService.AddTimeSheetEntry(c.Request.Context(), c.Param("employee_id"), req)
	if err != nil {
		respondError(c, err, "Failed to record timesheet entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTimeSheetEntryResponse(entry))
}
