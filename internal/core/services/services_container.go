package services

import (
	"log/slog"

	"github.com/ratewise/rate_engine_app/internal/core/ports"
	portsrepo "github.com/ratewise/rate_engine_app/internal/core/ports/repositories"
	portssvc "github.com/ratewise/rate_engine_app/internal/core/ports/services"
	"github.com/ratewise/rate_engine_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, fetcher ports.RateFetcher, clock ports.Clock, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The validator is shared: the orchestrator uses it for acquisition-time
	// checks and the settings service for manual rate input.
	validator := NewValidationService(clock, logger)

	container.Rate = NewRateService(repos, fetcher, clock, validator, cfg.MaxRateAgeDays, logger)
	container.Settings = NewSettingsService(repos.SettingsRepo, repos.ProviderRepo, repos.HistoryRepo, validator, clock, logger)
	container.Provider = NewProviderService(repos.ProviderRepo, repos.SettingsRepo, repos.QuotaRepo, clock, logger)
	container.Quota = NewQuotaService(repos.ProviderRepo, repos.QuotaRepo, clock, logger)
	container.History = NewHistoryService(repos.HistoryRepo, logger)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RateSvcFacade     = (*RateService)(nil)
	_ portssvc.SettingsSvcFacade = (*SettingsService)(nil)
	_ portssvc.ProviderSvcFacade = (*ProviderService)(nil)
	_ portssvc.QuotaSvcFacade    = (*QuotaService)(nil)
	_ portssvc.HistorySvcFacade  = (*HistoryService)(nil)
)
