package services

import (
	"context"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/dto"
	"github.com/shopspring/decimal"
)

// RateSvcFacade is the acquisition orchestrator surface consumed by handlers.
type RateSvcFacade interface {
	// GetCurrentRate resolves the tenant's current rate per its configured
	// mode: the manual rate in manual mode, provider acquisition with quota
	// failover in auto mode.
	GetCurrentRate(ctx context.Context, tenantID string) (*domain.ExchangeRate, error)

	// Convert resolves the current rate and converts amount with it.
	Convert(ctx context.Context, tenantID string, amount decimal.Decimal) (decimal.Decimal, *domain.ExchangeRate, error)
}

// SettingsSvcFacade manages tenant rate settings.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context, tenantID string) (*domain.RateSettings, error)
	UpdateSettings(ctx context.Context, tenantID string, req dto.UpdateRateSettingsRequest) (*domain.RateSettings, error)
}

// ProviderSvcFacade manages the tenant's provider registry.
type ProviderSvcFacade interface {
	ListProviders(ctx context.Context, tenantID string) ([]dto.ProviderResponse, error)
	CreateProvider(ctx context.Context, tenantID string, req dto.CreateProviderRequest) (*dto.ProviderResponse, error)
	UpdateProvider(ctx context.Context, tenantID, providerID string, req dto.UpdateProviderRequest) (*dto.ProviderResponse, error)
	DeleteProvider(ctx context.Context, tenantID, providerID string) error
}

// QuotaSvcFacade exposes per-provider quota consumption.
type QuotaSvcFacade interface {
	GetQuotaStatus(ctx context.Context, tenantID string) ([]dto.ProviderQuotaStatus, error)
}

// HistorySvcFacade exposes the append-only audit trail.
type HistorySvcFacade interface {
	ListHistory(ctx context.Context, tenantID string, req dto.HistoryListRequest) (*dto.HistoryListResponse, error)
}
