package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/SscSPs/payroll_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// payrollHandler handles HTTP requests related to payroll runs.
type payrollHandler struct {
	payrollService   portssvc.PayrollSvcFacade
	reportingService portssvc.ReportingService
	payslipService   portssvc.PayslipService
	scheduler        portssvc.TransitionScheduler
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(services *portssvc.ServiceContainer) *payrollHandler {
	return &payrollHandler{
		payrollService:   services.Payroll,
		reportingService: services.Reporting,
		payslipService:   services.Payslip,
		scheduler:        services.Scheduler,
	}
}

// RegisterPayrollRoutes registers routes related to payroll runs.
func RegisterPayrollRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPayrollHandler(services)

	payrolls := rg.Group("/payrolls")
	{
		payrolls.POST("", h.createPayroll)
		payrolls.GET("", h.listPayrolls)
		payrolls.GET("/:payroll_id", h.getPayroll)
		payrolls.GET("/:payroll_id/lines", h.listLines)
		payrolls.POST("/:payroll_id/lines", h.addLine)
		payrolls.POST("/:payroll_id/lines/:line_id/adjustments", h.adjustLine)
		payrolls.GET("/:payroll_id/lines/:line_id/payslip", h.getPayslip)
		payrolls.POST("/:payroll_id/recompute", h.recompute)
		payrolls.POST("/:payroll_id/transitions", h.transition)
		payrolls.GET("/:payroll_id/summary", h.getSummary)
	}
}

// createPayroll godoc
// @Summary Create a payroll run
// @Description Opens a new payroll run in CREATED
// @Tags payrolls
// @Accept  json
// @Produce  json
// @Param   payroll body dto.CreatePayrollRequest true "Payroll run details"
// @Success 201 {object} dto.PayrollResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Payroll number already used"
// @Failure 500 {object} ErrorResponse "Failed to create payroll"
// @Security BearerAuth
// @Router /payrolls [post]
func (h *payrollHandler) createPayroll(c *gin.Context) {
	var req dto.CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	run, err := h.payrollService.CreatePayroll(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create payroll")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPayrollResponse(run))
}

// listPayrolls godoc
// @Summary List payroll runs
// @Description Lists payroll runs, newest pay date first
// @Tags payrolls
// @Produce  json
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPayrollsResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Failure 500 {object} ErrorResponse "Failed to list payrolls"
// @Security BearerAuth
// @Router /payrolls [get]
func (h *payrollHandler) listPayrolls(c *gin.Context) {
	var params dto.ListPayrollsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.payrollService.ListPayrolls(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list payrolls")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getPayroll godoc
// @Summary Get a payroll run
// @Tags payrolls
// @Produce  json
// @Param   payroll_id path string true "Payroll ID"
// @Success 200 {object} dto.PayrollResponse
// @Failure 404 {object} ErrorResponse "Payroll not found"
// @Security BearerAuth
// @Router /payrolls/{payroll_id} [get]
func (h *payrollHandler) getPayroll(c *gin.Context) {
	run, err := h.payrollService.GetPayroll(c.Request.Context(), c.Param("payroll_id"))
	if err != nil {
		respondError(c, err, "Failed to get payroll")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollResponse(run))
}

// listLines godoc
// @Summary List payroll lines
// @Tags payrolls
// @Produce  json
// @Param   payroll_id path string true "Payroll ID"
// @Success 200 {array} dto.PayrollLineResponse
// @Failure 404 {object} ErrorResponse "Payroll not found"
// @Security BearerAuth
// @Router /payrolls/{payroll_id}/lines [get]
func (h *payrollHandler) listLines(c *gin.Context) {
	lines, err := h.payrollService.ListLines(c.Request.Context(), c.Param("payroll_id"))
	if err != nil {
		respondError(c, err, "Failed to list payroll lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollLineResponses(lines))
}

// addLine godoc
// @Summary Add a line to a payroll run
// @Description Puts an employee position on the run and recomputes every line
// @Tags payrolls
// @Accept  json
// @Produce  json
// @Param   payroll_id path string true "Payroll ID"
// @Param   line body dto.AddLineRequest true "Position to pay"
// @Success 201 {object} dto.PayrollLineResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Payroll or position not found"
// @Failure 409 {object} ErrorResponse "Run is no longer editable or the position is already on it"
// @Failure 422 {object} ErrorResponse "Line could not be computed"
// @Security BearerAuth
// @Router /payrolls/{payroll_id}/lines [post]
func (h *payrollHandler) addLine(c *gin.Context) {
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	line, err := h.payrollService.AddLine(c.Request.Context(), c.Param("payroll_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add payroll line")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPayrollLineResponse(line))
}

// adjustLine godoc
// @Summary Adjust a payroll line
// @Description Adds or removes additions and manual installments, then recomputes the run once
// @Tags payrolls
// @Accept  json
// @Produce  json
// @Param   payroll_id path string true "Payroll ID"
// @Param   line_id path string true "Line ID"
// @Param   adjustments body dto.LineAdjustmentsRequest true "Edits to apply"
// @Success 200 {object} dto.PayrollLineResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Payroll or line not found"
// @Failure 409 {object} ErrorResponse "Run is no longer editable"
// @Failure 422 {object} ErrorResponse "Run could not be computed"
// @Security BearerAuth
// @Router /payrolls/{payroll_id}/lines/{line_id}/adjustments [post]
func (h *payrollHandler) adjustLine(c *gin.Context) {
	var req dto.LineAdjustmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	line, err := h.payrollService.ApplyLineAdjustments(c.Request.Context(), c.Param("payroll_id"), c.Param("line_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to adjust payroll line")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollLineResponse(line))
}

// recompute godoc
// @Summary Recompute a payroll run
// @Tags payrolls
// @Produce  json
// @Param   payroll_id path string true "Payroll ID"
// @Success 200 {array} dto.PayrollLineResponse
// @Failure 409 {object} ErrorResponse "Run is no longer editable"
// @Failure 422 {object} ErrorResponse "Run could not be computed"
// @Security BearerAuth
// @Router /payrolls/{payroll_id}/recompute [post]
func (h *payrollHandler) recompute(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	lines, err := h.payrollService.Recompute(c.Request.Context(), c.Param("payroll_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to recompute payroll")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollLineResponses(lines))
}

// transition godoc
// @Summary Move a payroll run to its next status
// @Description Runs the transition synchronously, or queues it when async is set
// @Tags payrolls
// @Accept  json
// @Produce  json
// @Param   payroll_id path string true "Payroll ID"
// @Param   transition body dto.TransitionRequest true "Target status"
// @Success 200 {object} dto.TransitionResponse
// @Success 202 {object} dto.TransitionAcceptedResponse
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 404 {object} ErrorResponse "Payroll not found"
// @Failure 409 {object} ErrorResponse "Transition not allowed from the current status"
// @Failure 422 {object} ErrorResponse "Run could not be computed or posted"
// @Failure 503 {object} ErrorResponse "Async transitions are not configured"
// @Security BearerAuth
// @Router /payrolls/{payroll_id}/transitions [post]
func (h *payrollHandler) transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	target, err := domain.ParsePayrollStatus(req.Status)
	if err != nil {
		respondError(c, err, "Invalid payroll status")
		return
	}
	payrollID := c.Param("payroll_id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("payroll_id", payrollID),
		slog.String("target", req.Status))

	if req.Async {
		if h.scheduler == nil {
			respondError(c, apperrors.NewAppError(http.StatusServiceUnavailable, "Async transitions are not configured", nil), "Async transitions are not configured")
			return
		}
		taskID, err := h.scheduler.EnqueueTransition(c.Request.Context(), payrollID, target, userID)
		if err != nil {
			respondError(c, err, "Failed to queue payroll transition")
			return
		}
		logger.Info("Payroll transition queued", slog.String("task_id", taskID))
		c.JSON(http.StatusAccepted, dto.TransitionAcceptedResponse{TaskID: taskID, PayrollID: payrollID, Status: req.Status})
		return
	}

	resp, err := h.payrollService.Transition(c.Request.Context(), payrollID, target, userID)
	if err != nil {
		respondError(c, err, "Failed to transition payroll")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getSummary godoc
// @Summary Get a payroll summary
// @Description Totals the lines of a run and groups its taxes, additions and deductions
// @Tags reports
// @Produce  json
// @Param   payroll_id path string true "Payroll ID"
// @Success 200 {object} dto.PayrollSummaryResponse
// @Failure 404 {object} ErrorResponse "Payroll not found"
// @Failure 500 {object} ErrorResponse "Failed to build summary"
// @Security BearerAuth
// @Router /payrolls/{payroll_id}/summary [get]
func (h *payrollHandler) getSummary(c *gin.Context) {
	summary, err := h.reportingService.PayrollSummary(c.Request.Context(), c.Param("payroll_id"))
	if err != nil {
		respondError(c, err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollSummaryResponse(summary))
}

// getPayslip godoc
// @Summary Download a payslip
// @Tags reports
// @Produce  application/pdf
// @Param   payroll_id path string true "Payroll ID"
// @Param   line_id path string true "Line ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse "Payroll or line not found"
// @Failure 500 {object} ErrorResponse "Failed to render payslip"
// @Security BearerAuth
// @Router /payrolls/{payroll_id}/lines/{line_id}/payslip [get]
func (h *payrollHandler) getPayslip(c *gin.Context) {
	lineID := c.Param("line_id")
	var buf bytes.Buffer
	if err := h.payslipService.RenderPayslip(c.Request.Context(), c.Param("payroll_id"), lineID, &buf); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, err, "Payslip not found")
			return
		}
		respondError(c, err, "Failed to render payslip")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, lineID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
