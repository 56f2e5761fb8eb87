package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/ports"
	portssvc "github.com/ratewise/rate_engine_app/internal/core/ports/services"
	"github.com/ratewise/rate_engine_app/internal/dto"
	"github.com/ratewise/rate_engine_app/internal/middleware"
)

// rateHandler handles HTTP requests for rate resolution and conversion.
type rateHandler struct {
	rateService    portssvc.RateSvcFacade
	maxRateAgeDays int
	clock          ports.Clock
}

func newRateHandler(rs portssvc.RateSvcFacade, maxRateAgeDays int, clock ports.Clock) *rateHandler {
	return &rateHandler{rateService: rs, maxRateAgeDays: maxRateAgeDays, clock: clock}
}

// RegisterRateRoutes registers routes for rate resolution and conversion.
func RegisterRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade, maxRateAgeDays int, clock ports.Clock) {
	h := newRateHandler(rateService, maxRateAgeDays, clock)

	rates := rg.Group("/exchange-rate")
	{
		rates.GET("", h.getCurrentRate)
		rates.POST("/refresh", h.refreshRate)
		rates.POST("/convert", h.convert)
	}
}

// getCurrentRate godoc
// @Summary Get the current USD to IDR exchange rate
// @Description Resolves the tenant's current rate: the configured manual rate in manual mode, provider acquisition with quota failover in auto mode.
// @Tags exchange-rate
// @Produce json
// @Success 200 {object} dto.RateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Invalid rate configuration"
// @Failure 503 {object} map[string]string "No exchange rate available"
// @Security BearerAuth
// @Router /exchange-rate [get]
func (h *rateHandler) getCurrentRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.rateService.GetCurrentRate(c.Request.Context(), tenantID)
	if err != nil {
		respondRateError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate.Snapshot(h.clock.Now(), h.maxRateAgeDays)))
}

// refreshRate godoc
// @Summary Force a rate refresh
// @Description Triggers one acquisition cycle immediately. Concurrent triggers for the same tenant are serialized.
// @Tags exchange-rate
// @Produce json
// @Success 200 {object} dto.RateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "No exchange rate available"
// @Security BearerAuth
// @Router /exchange-rate/refresh [post]
func (h *rateHandler) refreshRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to refresh exchange rate")
	rate, err := h.rateService.GetCurrentRate(c.Request.Context(), tenantID)
	if err != nil {
		respondRateError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate.Snapshot(h.clock.Now(), h.maxRateAgeDays)))
}

// convert godoc
// @Summary Convert a USD amount to IDR
// @Description Resolves the current rate and converts the given amount, rounded to 2 decimal places.
// @Tags exchange-rate
// @Accept json
// @Produce json
// @Param conversion body dto.ConvertRequest true "Amount to convert"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "No exchange rate available"
// @Security BearerAuth
// @Router /exchange-rate/convert [post]
func (h *rateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	converted, rate, err := h.rateService.Convert(c.Request.Context(), tenantID, req.Amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error converting amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondRateError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:    req.Amount,
		Converted: converted,
		Rate:      dto.ToRateResponse(rate.Snapshot(h.clock.Now(), h.maxRateAgeDays)),
	})
}

// respondRateError maps rate resolution failures to HTTP statuses. A missing
// usable rate is a 503 because the condition is operational, not client error.
func respondRateError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrRateUnavailable):
		logger.Error("No exchange rate available", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Rate configuration invalid", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to resolve exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve exchange rate"})
	}
}
