package repositories

import (
	"context"
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettingsReader defines read operations for tenant rate settings.
type SettingsReader interface {
	// FindSettings retrieves the settings row for a tenant.
	FindSettings(ctx context.Context, tenantID string) (*domain.RateSettings, error)
}

// SettingsWriter defines write operations for tenant rate settings.
type SettingsWriter interface {
	// SaveSettings inserts or fully updates a tenant's settings.
	SaveSettings(ctx context.Context, settings domain.RateSettings) error

	// UpdateCurrentRate records the latest resolved rate for the tenant.
	UpdateCurrentRate(ctx context.Context, tenantID string, rate decimal.Decimal, source domain.RateSource, resolvedAt time.Time) error

	// UpdateActiveProvider switches the tenant's active provider reference.
	UpdateActiveProvider(ctx context.Context, tenantID, providerID string, updatedAt time.Time) error
}

// SettingsRepositoryFacade combines all settings repository interfaces.
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
