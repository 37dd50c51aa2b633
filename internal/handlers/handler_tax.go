package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

// RegisterTaxRoutes registers routes related to tax revisions and contributions.
func RegisterTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := &taxHandler{taxService: taxService}

	rg.POST("/tax-revisions", h.createRevision)

	contributions := rg.Group("/taxes")
	{
		contributions.POST("", h.createContribution)
		contributions.POST("/:contribution_id/opt-ins", h.optIn)
	}
}

// createRevision godoc
// @Summary Create a tax revision
// @Tags taxes
// @Accept  json
// @Produce  json
// @Param   revision body dto.CreateTaxRevisionRequest true "Revision details"
// @Success 201 {object} dto.TaxRevisionResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /tax-revisions [post]
func (h *taxHandler) createRevision(c *gin.Context) {
	var req dto.CreateTaxRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	revision, err := h.taxService.CreateRevision(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create tax revision")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaxRevisionResponse(revision))
}

// createContribution godoc
// @Summary Create a tax contribution
// @Description Defines a tax or social contribution by percent, fixed amount or bracket rules
// @Tags taxes
// @Accept  json
// @Produce  json
// @Param   contribution body dto.CreateTaxContributionRequest true "Contribution details"
// @Success 201 {object} dto.TaxContributionResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Revision not found"
// @Security BearerAuth
// @Router /taxes [post]
func (h *taxHandler) createContribution(c *gin.Context) {
	var req dto.CreateTaxContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	contribution, err := h.taxService.CreateContribution(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create tax contribution")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaxContributionResponse(contribution))
}

// optIn godoc
// @Summary Subscribe an employee to a voluntary contribution
// @Tags taxes
// @Accept  json
// @Produce  json
// @Param   contribution_id path string true "Contribution ID"
// @Param   optIn body dto.OptInRequest true "Employee to subscribe"
// @Success 200 {object} dto.OptInResponse
// @Failure 400 {object} ErrorResponse "Contribution is mandatory"
// @Failure 404 {object} ErrorResponse "Contribution or employee not found"
// @Security BearerAuth
// @Router /taxes/{contribution_id}/opt-ins [post]
func (h *taxHandler) optIn(c *gin.Context) {
	var req dto.OptInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if _, ok := requireUser(c); !ok {
		return
	}

	optIn, err := h.taxService.OptIn(c.Request.Context(), c.Param("contribution_id"), req)
	if err != nil {
		respondError(c, err, "Failed to record opt in")
		return
	}
	c.JSON(http.StatusOK, dto.ToOptInResponse(optIn))
}
