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

// providerHandler handles HTTP requests for the provider registry.
type providerHandler struct {
	providerService portssvc.ProviderSvcFacade
	quotaService    portssvc.QuotaSvcFacade
}

func newProviderHandler(ps portssvc.ProviderSvcFacade, qs portssvc.QuotaSvcFacade) *providerHandler {
	return &providerHandler{providerService: ps, quotaService: qs}
}

// RegisterProviderRoutes registers routes for provider management.
func RegisterProviderRoutes(rg *gin.RouterGroup, providerService portssvc.ProviderSvcFacade, quotaService portssvc.QuotaSvcFacade) {
	h := newProviderHandler(providerService, quotaService)

	providers := rg.Group("/exchange-rate-providers")
	{
		providers.GET("", h.listProviders)
		providers.POST("", h.createProvider)
		providers.PUT("/:provider_id", h.updateProvider)
		providers.DELETE("/:provider_id", h.deleteProvider)
		providers.GET("/quota-status", h.getQuotaStatus)
	}
}

// listProviders godoc
// @Summary List the tenant's providers
// @Description Returns all providers in priority order, annotated with remaining quota for the current month.
// @Tags exchange-rate-providers
// @Produce json
// @Success 200 {array} dto.ProviderResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list providers"
// @Security BearerAuth
// @Router /exchange-rate-providers [get]
func (h *providerHandler) listProviders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	providers, err := h.providerService.ListProviders(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to list providers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}

	c.JSON(http.StatusOK, providers)
}

// createProvider godoc
// @Summary Register a new provider
// @Description Adds a provider to the tenant's registry. Names must be unique per tenant.
// @Tags exchange-rate-providers
// @Accept json
// @Produce json
// @Param provider body dto.CreateProviderRequest true "Provider details"
// @Success 201 {object} dto.ProviderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Provider name already exists"
// @Failure 422 {object} map[string]string "Validation failed"
// @Security BearerAuth
// @Router /exchange-rate-providers [post]
func (h *providerHandler) createProvider(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProvider", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create provider", slog.String("provider_name", req.Name))

	created, err := h.providerService.CreateProvider(c.Request.Context(), tenantID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate provider", slog.String("provider_name", req.Name))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating provider", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create provider", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create provider"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// updateProvider godoc
// @Summary Update a provider
// @Description Applies a partial update to an existing provider configuration.
// @Tags exchange-rate-providers
// @Accept json
// @Produce json
// @Param provider_id path string true "Provider ID"
// @Param provider body dto.UpdateProviderRequest true "Fields to update"
// @Success 200 {object} dto.ProviderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Provider not found"
// @Failure 409 {object} map[string]string "Provider name already exists"
// @Security BearerAuth
// @Router /exchange-rate-providers/{provider_id} [put]
func (h *providerHandler) updateProvider(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	providerID := c.Param("provider_id")

	var req dto.UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProvider", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.providerService.UpdateProvider(c.Request.Context(), tenantID, providerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update provider", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// deleteProvider godoc
// @Summary Delete a provider
// @Description Removes a provider from the registry. The tenant's active provider cannot be deleted while selected.
// @Tags exchange-rate-providers
// @Produce json
// @Param provider_id path string true "Provider ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Provider not found"
// @Failure 422 {object} map[string]string "Provider is the active provider"
// @Security BearerAuth
// @Router /exchange-rate-providers/{provider_id} [delete]
func (h *providerHandler) deleteProvider(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	providerID := c.Param("provider_id")

	err := h.providerService.DeleteProvider(c.Request.Context(), tenantID, providerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Blocked provider deletion", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to delete provider", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete provider"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getQuotaStatus godoc
// @Summary Get per-provider quota status
// @Description Returns the current month's quota consumption for every configured provider.
// @Tags exchange-rate-providers
// @Produce json
// @Success 200 {array} dto.ProviderQuotaStatus
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to get quota status"
// @Security BearerAuth
// @Router /exchange-rate-providers/quota-status [get]
func (h *providerHandler) getQuotaStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	statuses, err := h.quotaService.GetQuotaStatus(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to get quota status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get quota status"})
		return
	}

	c.JSON(http.StatusOK, statuses)
}
