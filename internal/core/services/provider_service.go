package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/core/ports"
	portsrepo "github.com/ratewise/rate_engine_app/internal/core/ports/repositories"
	"github.com/ratewise/rate_engine_app/internal/dto"
)

// ProviderService manages the tenant's provider registry.
type ProviderService struct {
	providerRepo portsrepo.ProviderRepositoryFacade
	settingsRepo portsrepo.SettingsRepositoryFacade
	quotaRepo    portsrepo.QuotaRepositoryFacade
	clock        ports.Clock
	logger       *slog.Logger
}

// NewProviderService creates a new ProviderService.
func NewProviderService(
	providerRepo portsrepo.ProviderRepositoryFacade,
	settingsRepo portsrepo.SettingsRepositoryFacade,
	quotaRepo portsrepo.QuotaRepositoryFacade,
	clock ports.Clock,
	logger *slog.Logger,
) *ProviderService {
	return &ProviderService{
		providerRepo: providerRepo,
		settingsRepo: settingsRepo,
		quotaRepo:    quotaRepo,
		clock:        clock,
		logger:       logger,
	}
}

// ListProviders returns all of the tenant's providers in priority order, each
// annotated with its remaining quota for the current period.
func (s *ProviderService) ListProviders(ctx context.Context, tenantID string) ([]dto.ProviderResponse, error) {
	providers, err := s.providerRepo.ListProviders(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	trackers, err := s.quotaRepo.ListTrackers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quota trackers: %w", err)
	}

	now := s.clock.Now()
	responses := make([]dto.ProviderResponse, 0, len(providers))
	for _, p := range providers {
		var remaining *int
		if !p.IsUnlimited {
			tracker, ok := trackers[p.ProviderID]
			if !ok || tracker.ShouldReset(now) {
				r := p.MonthlyQuota
				remaining = &r
			} else {
				r := tracker.RemainingQuota()
				remaining = &r
			}
		}
		responses = append(responses, dto.ToProviderResponse(p, remaining))
	}
	return responses, nil
}

// CreateProvider registers a new provider. Names must be unique per tenant.
func (s *ProviderService) CreateProvider(ctx context.Context, tenantID string, req dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	existing, err := s.providerRepo.FindProviderByName(ctx, tenantID, req.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check provider name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateError(fmt.Sprintf("a provider named %q already exists", req.Name))
	}

	if !req.IsUnlimited && req.MonthlyQuota <= 0 {
		return nil, apperrors.NewValidationError("monthly quota must be positive for limited providers")
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	now := s.clock.Now()
	provider := domain.Provider{
		ProviderID:        uuid.NewString(),
		TenantID:          tenantID,
		Code:              req.Code,
		Name:              req.Name,
		APIURL:            req.APIURL,
		RequiresAPIKey:    req.RequiresAPIKey,
		APIKeyRef:         req.APIKey,
		IsUnlimited:       req.IsUnlimited,
		MonthlyQuota:      req.MonthlyQuota,
		Priority:          req.Priority,
		IsEnabled:         enabled,
		WarningThreshold:  req.WarningThreshold,
		CriticalThreshold: req.CriticalThreshold,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.providerRepo.SaveProvider(ctx, provider); err != nil {
		return nil, fmt.Errorf("failed to save provider: %w", err)
	}

	s.logger.Info("provider created",
		slog.String("tenant_id", tenantID),
		slog.String("provider_id", provider.ProviderID),
		slog.String("code", provider.Code),
	)
	resp := dto.ToProviderResponse(provider, initialRemaining(provider))
	return &resp, nil
}

// UpdateProvider applies a partial update to an existing provider.
func (s *ProviderService) UpdateProvider(ctx context.Context, tenantID, providerID string, req dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	provider, err := s.providerRepo.FindProviderByID(ctx, tenantID, providerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("provider")
		}
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}

	if req.Name != nil && *req.Name != provider.Name {
		existing, err := s.providerRepo.FindProviderByName(ctx, tenantID, *req.Name)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check provider name: %w", err)
		}
		if existing != nil {
			return nil, apperrors.NewDuplicateError(fmt.Sprintf("a provider named %q already exists", *req.Name))
		}
		provider.Name = *req.Name
	}
	if req.APIURL != nil {
		provider.APIURL = *req.APIURL
	}
	if req.APIKey != nil {
		provider.APIKeyRef = *req.APIKey
	}
	if req.RequiresAPIKey != nil {
		provider.RequiresAPIKey = *req.RequiresAPIKey
	}
	if req.IsUnlimited != nil {
		provider.IsUnlimited = *req.IsUnlimited
	}
	if req.MonthlyQuota != nil {
		provider.MonthlyQuota = *req.MonthlyQuota
	}
	if req.Priority != nil {
		provider.Priority = *req.Priority
	}
	if req.IsEnabled != nil {
		provider.IsEnabled = *req.IsEnabled
	}
	if req.WarningThreshold != nil {
		provider.WarningThreshold = *req.WarningThreshold
	}
	if req.CriticalThreshold != nil {
		provider.CriticalThreshold = *req.CriticalThreshold
	}

	if !provider.IsUnlimited && provider.MonthlyQuota <= 0 {
		return nil, apperrors.NewValidationError("monthly quota must be positive for limited providers")
	}

	provider.UpdatedAt = s.clock.Now()
	if err := s.providerRepo.UpdateProvider(ctx, *provider); err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}

	s.logger.Info("provider updated",
		slog.String("tenant_id", tenantID),
		slog.String("provider_id", providerID),
	)
	resp := dto.ToProviderResponse(*provider, nil)
	return &resp, nil
}

// DeleteProvider removes a provider. The tenant's active provider cannot be
// deleted while it is selected.
func (s *ProviderService) DeleteProvider(ctx context.Context, tenantID, providerID string) error {
	if _, err := s.providerRepo.FindProviderByID(ctx, tenantID, providerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("provider")
		}
		return fmt.Errorf("failed to load provider: %w", err)
	}

	settings, err := s.settingsRepo.FindSettings(ctx, tenantID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to load rate settings: %w", err)
	}
	if settings != nil && settings.ActiveProviderID != nil && *settings.ActiveProviderID == providerID {
		return apperrors.NewValidationError("cannot delete the active provider; select another provider first")
	}

	if err := s.providerRepo.DeleteProvider(ctx, tenantID, providerID); err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}

	s.logger.Info("provider deleted",
		slog.String("tenant_id", tenantID),
		slog.String("provider_id", providerID),
	)
	return nil
}

func initialRemaining(p domain.Provider) *int {
	if p.IsUnlimited {
		return nil
	}
	r := p.MonthlyQuota
	return &r
}
