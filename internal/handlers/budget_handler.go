package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/budget"
	"fintrack/internal/services"
)

// BudgetHandler handles budget limit and evaluation requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	reportService services.ReportServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, reportService services.ReportServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, reportService: reportService, auditService: auditService}
}

// SetLimitRequest is the payload for creating or replacing a category limit.
type SetLimitRequest struct {
	Category string          `json:"category" binding:"required,max=100"`
	Limit    decimal.Decimal `json:"limit" binding:"decimal_positive,decimal_cents"`
}

// SetLimit creates or replaces a spending limit
// @Summary     Set a budget limit
// @Description Create or replace the monthly spending limit for a category
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetLimitRequest true "Category and limit"
// @Success     200 {object} models.BudgetLimit
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/limits [put]
func (h *BudgetHandler) SetLimit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	limit, err := h.budgetService.SetLimit(c.Request.Context(), userID, req.Category, req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.ActionUpdate, services.ResourceBudgetLimit, limit.Category, c.ClientIP(),
		map[string]interface{}{"limit": limit.LimitAmount.String()})

	c.JSON(http.StatusOK, limit)
}

// GetLimits lists the caller's limits
// @Summary     List budget limits
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.BudgetLimit
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/limits [get]
func (h *BudgetHandler) GetLimits(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limits, err := h.budgetService.GetLimits(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, limits)
}

// Overview evaluates the limited categories
// @Summary     Budget overview
// @Description Current month utilization of every category with a limit
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} budget.Report
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/overview [get]
func (h *BudgetHandler) Overview(c *gin.Context) {
	h.report(c, h.budgetService.Overview)
}

// Categories evaluates the categories with spending
// @Summary     Budget by category
// @Description Current month utilization of every category with expenses
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} budget.Report
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/categories [get]
func (h *BudgetHandler) Categories(c *gin.Context) {
	h.report(c, h.budgetService.Categories)
}

// Grid evaluates the whole expense taxonomy
// @Summary     Budget grid
// @Description Current month spent and limit for every expense category
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} budget.Report
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/grid [get]
func (h *BudgetHandler) Grid(c *gin.Context) {
	h.report(c, h.reportService.BudgetGrid)
}

func (h *BudgetHandler) report(c *gin.Context, build func(ctx context.Context, userID string) (*budget.Report, error)) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := build(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
