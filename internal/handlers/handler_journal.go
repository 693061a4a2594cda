package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fincore-app/fincore/internal/core/ports/services"
	"github.com/fincore-app/fincore/internal/dto"
	"github.com/fincore-app/fincore/internal/middleware"
)

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("/:id", h.getEntry)
		entries.GET("", h.listEntries)
		entries.PUT("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a balanced draft entry with at least two lines
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 422 {object} map[string]string "Entry violates a bookkeeping rule"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves an entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves entries filtered by account, date range or status, newest first
// @Tags journal-entries
// @Produce  json
// @Param   account_id query string false "Only entries touching this account"
// @Param   date_from query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param   date_to query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param   status query string false "Entry status filter"
// @Param   page query int false "Page number (default 1)"
// @Param   per_page query int false "Page size (default 20)"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	response, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// updateEntry godoc
// @Summary Update a draft entry
// @Description Rewrites a draft entry's header and, when given, its lines
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is no longer a draft"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Router /journal-entries/{id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), entryID, req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Description Removes a draft entry and its lines; posted entries can only be reversed
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is no longer a draft"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	if err := h.journalService.DeleteEntry(c.Request.Context(), entryID); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Validates and irreversibly posts a draft, making it count toward balances
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or was posted concurrently"
// @Failure 422 {object} map[string]string "Entry violates a bookkeeping rule or its period is closed"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /journal-entries/{id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.journalService.PostEntry(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Creates and posts a mirror entry, marking the original as reversed
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal date and description"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Failure 422 {object} map[string]string "Reversal date falls in a closed period"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Router /journal-entries/{id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), entryID, req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}
