package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// creditHandler handles HTTP requests related to employee credits.
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

// RegisterCreditRoutes registers routes related to credits and their payment plans.
func RegisterCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := &creditHandler{creditService: creditService}

	credits := rg.Group("/credits")
	{
		credits.POST("", h.createCredit)
		credits.GET("/:credit_id", h.getCredit)
		credits.POST("/:credit_id/plans", h.addPlan)
	}
}

// createCredit godoc
// @Summary Grant a credit to an employee
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   credit body dto.CreateCreditRequest true "Credit details"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Security BearerAuth
// @Router /credits [post]
func (h *creditHandler) createCredit(c *gin.Context) {
	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	credit, err := h.creditService.CreateCredit(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create credit")
		return
	}
	resp, err := h.creditService.GetCredit(c.Request.Context(), credit.CreditID)
	if err != nil {
		respondError(c, err, "Failed to load credit")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// getCredit godoc
// @Summary Get a credit
// @Description Returns the credit with its plans and the balance left to recover
// @Tags credits
// @Produce  json
// @Param   credit_id path string true "Credit ID"
// @Success 200 {object} dto.CreditResponse
// @Failure 404 {object} ErrorResponse "Credit not found"
// @Security BearerAuth
// @Router /credits/{credit_id} [get]
func (h *creditHandler) getCredit(c *gin.Context) {
	resp, err := h.creditService.GetCredit(c.Request.Context(), c.Param("credit_id"))
	if err != nil {
		respondError(c, err, "Failed to load credit")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// addPlan godoc
// @Summary Add a payment plan to a credit
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   credit_id path string true "Credit ID"
// @Param   plan body dto.CreatePaymentPlanRequest true "Plan details"
// @Success 201 {object} dto.PaymentPlanResponse
// @Failure 400 {object} ErrorResponse "Validation error or credit already recovered"
// @Failure 404 {object} ErrorResponse "Credit not found"
// @Security BearerAuth
// @Router /credits/{credit_id}/plans [post]
func (h *creditHandler) addPlan(c *gin.Context) {
	var req dto.CreatePaymentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	plan, err := h.creditService.AddPlan(c.Request.Context(), c.Param("credit_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add payment plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentPlanResponse(plan))
}
