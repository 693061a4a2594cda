package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fincore-app/fincore/internal/core/ports/services"
	"github.com/fincore-app/fincore/internal/dto"
	"github.com/fincore-app/fincore/internal/middleware"
)

// fiscalHandler handles HTTP requests for the fiscal calendar.
type fiscalHandler struct {
	fiscalService portssvc.FiscalCalendarSvc
}

// newFiscalHandler creates a new fiscalHandler.
func newFiscalHandler(fs portssvc.FiscalCalendarSvc) *fiscalHandler {
	return &fiscalHandler{
		fiscalService: fs,
	}
}

// registerFiscalRoutes registers routes related to fiscal years and periods.
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalCalendarSvc) {
	h := newFiscalHandler(fiscalService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createYear)
		years.GET("", h.listYears)
		years.GET("/current", h.getCurrentYear)
		years.GET("/:id", h.getYear)
		years.POST("/:id/close", h.closeYear)
		years.POST("/:id/reopen", h.reopenYear)
		years.POST("/:id/periods", h.createPeriod)
		years.GET("/:id/periods", h.listPeriods)
	}

	periods := rg.Group("/fiscal-periods")
	{
		periods.POST("/:id/close", h.closePeriod)
		periods.POST("/:id/reopen", h.reopenPeriod)
	}
}

// createYear godoc
// @Summary Create a fiscal year
// @Description Creates an open fiscal year covering a date range that overlaps no other year
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   year body dto.CreateFiscalYearRequest true "Fiscal year details"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Date range overlaps an existing year"
// @Failure 500 {object} map[string]string "Failed to create fiscal year"
// @Router /fiscal-years [post]
func (h *fiscalHandler) createYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	year, err := h.fiscalService.CreateYear(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Fiscal year created", slog.String("year_id", year.YearID), slog.String("name", year.Name))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

// listYears godoc
// @Summary List fiscal years
// @Description Retrieves all fiscal years ordered by start date
// @Tags fiscal
// @Produce  json
// @Success 200 {array} dto.FiscalYearResponse
// @Failure 500 {object} map[string]string "Failed to list fiscal years"
// @Router /fiscal-years [get]
func (h *fiscalHandler) listYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	years, err := h.fiscalService.ListYears(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponses(years))
}

// getCurrentYear godoc
// @Summary Get the current fiscal year
// @Description Retrieves the open fiscal year containing today's date
// @Tags fiscal
// @Produce  json
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "No open fiscal year"
// @Failure 500 {object} map[string]string "Failed to retrieve fiscal year"
// @Router /fiscal-years/current [get]
func (h *fiscalHandler) getCurrentYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := h.fiscalService.GetCurrentYear(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// getYear godoc
// @Summary Get a fiscal year by ID
// @Tags fiscal
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fiscal year"
// @Router /fiscal-years/{id} [get]
func (h *fiscalHandler) getYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	yearID := c.Param("id")

	year, err := h.fiscalService.GetYearByID(c.Request.Context(), yearID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// closeYear godoc
// @Summary Close a fiscal year
// @Description Closes a year so entries dated inside it can no longer be posted
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Param   options body dto.CloseFiscalYearRequest false "Close options"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Year is already closed"
// @Failure 422 {object} map[string]string "Draft entries remain inside the year"
// @Failure 500 {object} map[string]string "Failed to close fiscal year"
// @Router /fiscal-years/{id}/close [post]
func (h *fiscalHandler) closeYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	yearID := c.Param("id")

	// Body is optional; absence means force=false.
	var req dto.CloseFiscalYearRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for CloseYear", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	year, err := h.fiscalService.CloseYear(c.Request.Context(), yearID, req.Force)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Fiscal year closed", slog.String("year_id", yearID), slog.Bool("force", req.Force))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// reopenYear godoc
// @Summary Reopen a fiscal year
// @Tags fiscal
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Year is already open"
// @Failure 500 {object} map[string]string "Failed to reopen fiscal year"
// @Router /fiscal-years/{id}/reopen [post]
func (h *fiscalHandler) reopenYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	yearID := c.Param("id")

	year, err := h.fiscalService.ReopenYear(c.Request.Context(), yearID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Fiscal year reopened", slog.String("year_id", yearID))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// createPeriod godoc
// @Summary Create a fiscal period
// @Description Subdivides a fiscal year with an open period that overlaps no sibling
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Param   period body dto.CreateFiscalPeriodRequest true "Period details"
// @Success 201 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or period outside the year"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Period overlaps a sibling"
// @Failure 500 {object} map[string]string "Failed to create fiscal period"
// @Router /fiscal-years/{id}/periods [post]
func (h *fiscalHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	yearID := c.Param("id")

	var req dto.CreateFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	period, err := h.fiscalService.CreatePeriod(c.Request.Context(), yearID, req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("year_id", yearID))
	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

// listPeriods godoc
// @Summary List a year's fiscal periods
// @Tags fiscal
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {array} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 500 {object} map[string]string "Failed to list fiscal periods"
// @Router /fiscal-years/{id}/periods [get]
func (h *fiscalHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	yearID := c.Param("id")

	periods, err := h.fiscalService.ListPeriods(c.Request.Context(), yearID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponses(periods))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Tags fiscal
// @Produce  json
// @Param   id path string true "Fiscal period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Fiscal period not found"
// @Failure 409 {object} map[string]string "Period is already closed"
// @Failure 500 {object} map[string]string "Failed to close fiscal period"
// @Router /fiscal-periods/{id}/close [post]
func (h *fiscalHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	period, err := h.fiscalService.ClosePeriod(c.Request.Context(), periodID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Fiscal period closed", slog.String("period_id", periodID))
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// reopenPeriod godoc
// @Summary Reopen a fiscal period
// @Tags fiscal
// @Produce  json
// @Param   id path string true "Fiscal period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Fiscal period not found"
// @Failure 409 {object} map[string]string "Period is already open"
// @Failure 500 {object} map[string]string "Failed to reopen fiscal period"
// @Router /fiscal-periods/{id}/reopen [post]
func (h *fiscalHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	period, err := h.fiscalService.ReopenPeriod(c.Request.Context(), periodID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Fiscal period reopened", slog.String("period_id", periodID))
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}
