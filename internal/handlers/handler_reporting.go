package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fincore-app/fincore/internal/core/ports/services"
	"github.com/fincore-app/fincore/internal/dto"
	"github.com/fincore-app/fincore/internal/middleware"
)

// reportingHandler handles HTTP requests for balance reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/account-balance/:id", h.getAccountBalance)
	}
}

// asOfDate parses the optional as_of query parameter, defaulting to today.
func asOfDate(c *gin.Context) (time.Time, error) {
	value := c.Query("as_of")
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return dto.ParseDate(value)
}

// getTrialBalance godoc
// @Summary Trial balance report
// @Description Lists posted debit and credit totals per account as of a date; grand totals always agree
// @Tags reports
// @Produce  json
// @Param   as_of query string false "Inclusive report date (YYYY-MM-DD, default today)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid as_of date"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := asOfDate(c)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, asOf))
}

// getAccountBalance godoc
// @Summary Account balance
// @Description Computes the signed balance of an account as of a date, optionally rolling up its subtree
// @Tags reports
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   as_of query string false "Inclusive report date (YYYY-MM-DD, default today)"
// @Param   include_descendants query bool false "Roll up the whole subtree"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid as_of date"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Balance would mix currencies"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /reports/account-balance/{id} [get]
func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	asOf, err := asOfDate(c)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	includeDescendants := c.Query("include_descendants") == "true"

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), accountID, asOf, includeDescendants)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Debug("Account balance computed",
		slog.String("account_id", accountID),
		slog.Int64("amount", balance.MinorUnits))
	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(accountID, balance, asOf, includeDescendants))
}
