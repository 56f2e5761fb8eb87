package repositories

import (
	"context"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
)

// ProviderReader defines read operations for provider configurations.
type ProviderReader interface {
	// FindProviderByID retrieves one provider scoped to the tenant.
	FindProviderByID(ctx context.Context, tenantID, providerID string) (*domain.Provider, error)

	// ListProviders returns all of the tenant's providers ordered by priority,
	// ties broken by creation time.
	ListProviders(ctx context.Context, tenantID string) ([]domain.Provider, error)

	// ListEnabledProviders returns only enabled providers in the same order.
	ListEnabledProviders(ctx context.Context, tenantID string) ([]domain.Provider, error)

	// FindProviderByName retrieves a provider by its tenant-unique name.
	FindProviderByName(ctx context.Context, tenantID, name string) (*domain.Provider, error)
}

// ProviderWriter defines write operations for provider configurations.
type ProviderWriter interface {
	// SaveProvider persists a new provider configuration.
	SaveProvider(ctx context.Context, provider domain.Provider) error

	// UpdateProvider updates an existing provider configuration.
	UpdateProvider(ctx context.Context, provider domain.Provider) error

	// DeleteProvider removes a provider. Callers must ensure it is not the
	// tenant's active provider first.
	DeleteProvider(ctx context.Context, tenantID, providerID string) error
}

// ProviderRepositoryFacade combines all provider repository interfaces.
type ProviderRepositoryFacade interface {
	ProviderReader
	ProviderWriter
}
