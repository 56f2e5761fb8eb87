package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratewise/rate_engine_app/internal/apperrors"
	portssvc "github.com/ratewise/rate_engine_app/internal/core/ports/services"
	"github.com/ratewise/rate_engine_app/internal/dto"
	"github.com/ratewise/rate_engine_app/internal/middleware"
)

// historyHandler handles HTTP requests for the rate history audit trail.
type historyHandler struct {
	historyService portssvc.HistorySvcFacade
}

func newHistoryHandler(hs portssvc.HistorySvcFacade) *historyHandler {
	return &historyHandler{historyService: hs}
}

// RegisterHistoryRoutes registers routes for history queries.
func RegisterHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.HistorySvcFacade) {
	h := newHistoryHandler(historyService)
	rg.GET("/exchange-rate-history", h.listHistory)
}

// listHistory godoc
// @Summary List rate history entries
// @Description Returns the tenant's rate history newest-first, filterable by date range, provider and event type, with cursor pagination.
// @Tags exchange-rate-history
// @Produce json
// @Param dateFrom query string false "Inclusive lower bound (RFC3339)"
// @Param dateTo query string false "Exclusive upper bound (RFC3339)"
// @Param providerCode query string false "Filter by provider code"
// @Param eventType query string false "Filter by event type"
// @Param limit query int false "Page size (default 50, max 500)"
// @Param nextToken query string false "Cursor token from a previous page"
// @Success 200 {object} dto.HistoryListResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list history"
// @Security BearerAuth
// @Router /exchange-rate-history [get]
func (h *historyHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.HistoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.historyService.ListHistory(c.Request.Context(), tenantID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid history query", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
