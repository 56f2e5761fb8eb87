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

// SettingsService manages tenant rate settings and the manual/auto mode switch.
type SettingsService struct {
	settingsRepo portsrepo.SettingsRepositoryFacade
	providerRepo portsrepo.ProviderRepositoryFacade
	historyRepo  portsrepo.HistoryRepositoryFacade
	validator    *ValidationService
	clock        ports.Clock
	logger       *slog.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(
	settingsRepo portsrepo.SettingsRepositoryFacade,
	providerRepo portsrepo.ProviderRepositoryFacade,
	historyRepo portsrepo.HistoryRepositoryFacade,
	validator *ValidationService,
	clock ports.Clock,
	logger *slog.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		providerRepo: providerRepo,
		historyRepo:  historyRepo,
		validator:    validator,
		clock:        clock,
		logger:       logger,
	}
}

// GetSettings retrieves the tenant's settings, returning a default manual-mode
// record for tenants that have never configured anything.
func (s *SettingsService) GetSettings(ctx context.Context, tenantID string) (*domain.RateSettings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.RateSettings{TenantID: tenantID, Mode: domain.ModeManual}, nil
		}
		return nil, fmt.Errorf("failed to load rate settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies a mode/provider switch. Switching to manual requires
// a valid manual rate; switching to auto requires an enabled provider. The
// previous manual rate is retained on a switch to auto so the tenant can
// switch back without re-entering it.
func (s *SettingsService) UpdateSettings(ctx context.Context, tenantID string, req dto.UpdateRateSettingsRequest) (*domain.RateSettings, error) {
	settings, err := s.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	switch domain.RateMode(req.Mode) {
	case domain.ModeManual:
		if err := s.validator.ValidateManualRate(req.ManualRate, true); err != nil {
			return nil, err
		}
		settings.Mode = domain.ModeManual
		settings.ManualRate = req.ManualRate
		settings.CurrentRate = req.ManualRate
		settings.CurrentRateSource = domain.SourceManual
		settings.CurrentRateAt = &now

	case domain.ModeAuto:
		if req.ActiveProviderID == nil || *req.ActiveProviderID == "" {
			return nil, apperrors.NewValidationError("an active provider is required in auto mode")
		}
		provider, err := s.providerRepo.FindProviderByID(ctx, tenantID, *req.ActiveProviderID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("active provider does not exist")
			}
			return nil, fmt.Errorf("failed to load provider: %w", err)
		}
		if !provider.IsEnabled {
			return nil, apperrors.NewValidationError("active provider must be enabled")
		}
		settings.Mode = domain.ModeAuto
		settings.ActiveProviderID = req.ActiveProviderID
		// ManualRate is retained for a quick switch back to manual mode.

	default:
		return nil, apperrors.NewValidationError("mode must be manual or auto")
	}

	if req.AutoUpdateEnabled != nil {
		settings.AutoUpdateEnabled = *req.AutoUpdateEnabled
	}
	if req.AutoUpdateTime != nil {
		settings.AutoUpdateTime = *req.AutoUpdateTime
	}
	settings.LastUpdatedAt = now

	if err := s.settingsRepo.SaveSettings(ctx, *settings); err != nil {
		return nil, fmt.Errorf("failed to save rate settings: %w", err)
	}

	if settings.Mode == domain.ModeManual {
		entry := domain.HistoryEntry{
			EntryID:   uuid.NewString(),
			TenantID:  tenantID,
			Rate:      settings.ManualRate,
			Source:    domain.SourceManual,
			EventType: domain.EventManualUpdate,
			CreatedAt: now,
		}
		if err := s.historyRepo.AppendEntry(ctx, entry); err != nil {
			s.logger.Error("failed to record manual rate update",
				slog.String("tenant_id", tenantID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Info("rate settings updated",
		slog.String("tenant_id", tenantID),
		slog.String("mode", string(settings.Mode)),
	)
	return settings, nil
}
