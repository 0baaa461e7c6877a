package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/period"
	"fintrack/internal/services"
)

// ReportHandler serves the dashboard widgets and range reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// respond runs a per-user view and renders it as JSON.
func respond[T any](c *gin.Context, view func(ctx context.Context, userID string) (T, error)) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out, err := view(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// Dashboard returns the current month summary
// @Summary     Dashboard summary
// @Description Current month totals with percentage change against the previous month
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	respond(c, h.reportService.Dashboard)
}

// MonthlyStats returns the yearly income and expense series
// @Summary     Monthly stats
// @Description Income and expenses for each month of the current year
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  services.MonthlyPoint
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/monthly-stats [get]
func (h *ReportHandler) MonthlyStats(c *gin.Context) {
	respond(c, h.reportService.MonthlySeries)
}

// SpendingCategories returns the expense breakdown
// @Summary     Spending by category
// @Description Current month expenses per category with their share of the total
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  aggregate.Share
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/spending-categories [get]
func (h *ReportHandler) SpendingCategories(c *gin.Context) {
	respond(c, h.reportService.SpendingCategories)
}

// RecentActivity returns the latest recorded transactions
// @Summary     Recent activity
// @Description The five most recently recorded transactions
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Transaction
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/recent-activity [get]
func (h *ReportHandler) RecentActivity(c *gin.Context) {
	respond(c, h.reportService.RecentActivity)
}

// InvestmentPerformance returns investments per recent business day
// @Summary     Investment performance
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  services.DailyPoint
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/investment-performance [get]
func (h *ReportHandler) InvestmentPerformance(c *gin.Context) {
	respond(c, h.reportService.InvestmentPerformance)
}

// MarketOverview returns activity volume per recent business day
// @Summary     Market overview
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  services.DailyPoint
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/market-overview [get]
func (h *ReportHandler) MarketOverview(c *gin.Context) {
	respond(c, h.reportService.MarketOverview)
}

// PeriodOverview reports a caller-chosen range month by month
// @Summary     Reports overview
// @Description Income, expenses and savings per month of [startDate, endDate]
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       startDate query string true "First date (YYYY-MM-DD)"
// @Param       endDate   query string true "Last date (YYYY-MM-DD)"
// @Success     200 {array}  services.PeriodPoint
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/overview [get]
func (h *ReportHandler) PeriodOverview(c *gin.Context) {
	start, err := period.ParseDate("startDate", c.Query("startDate"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := period.ParseDate("endDate", c.Query("endDate"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, func(ctx context.Context, userID string) ([]services.PeriodPoint, error) {
		return h.reportService.PeriodOverview(ctx, userID, start, end)
	})
}

// AdminStats returns fleet-wide figures
// @Summary     Admin stats
// @Description User and transaction figures across every user
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.AdminStats
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/stats [get]
func (h *ReportHandler) AdminStats(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.reportService.AdminStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
