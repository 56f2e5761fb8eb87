package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ratewise/rate_engine_app/internal/core/ports"
	portsrepo "github.com/ratewise/rate_engine_app/internal/core/ports/repositories"
	"github.com/ratewise/rate_engine_app/internal/dto"
)

// QuotaService reports per-provider quota consumption for the current month.
type QuotaService struct {
	providerRepo portsrepo.ProviderRepositoryFacade
	quotaRepo    portsrepo.QuotaRepositoryFacade
	clock        ports.Clock
	logger       *slog.Logger
}

// NewQuotaService creates a new QuotaService.
func NewQuotaService(
	providerRepo portsrepo.ProviderRepositoryFacade,
	quotaRepo portsrepo.QuotaRepositoryFacade,
	clock ports.Clock,
	logger *slog.Logger,
) *QuotaService {
	return &QuotaService{
		providerRepo: providerRepo,
		quotaRepo:    quotaRepo,
		clock:        clock,
		logger:       logger,
	}
}

// GetQuotaStatus returns one status row per configured provider in priority
// order. Trackers from an earlier month are shown as a fresh period; unlimited
// providers report zero usage percentage and are never exhausted.
func (s *QuotaService) GetQuotaStatus(ctx context.Context, tenantID string) ([]dto.ProviderQuotaStatus, error) {
	providers, err := s.providerRepo.ListProviders(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	trackers, err := s.quotaRepo.ListTrackers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quota trackers: %w", err)
	}

	now := s.clock.Now()
	statuses := make([]dto.ProviderQuotaStatus, 0, len(providers))
	for _, p := range providers {
		status := dto.ProviderQuotaStatus{
			ProviderID:        p.ProviderID,
			ProviderCode:      p.Code,
			ProviderName:      p.Name,
			IsUnlimited:       p.IsUnlimited,
			QuotaLimit:        p.MonthlyQuota,
			WarningThreshold:  p.WarningThreshold,
			CriticalThreshold: p.CriticalThreshold,
		}

		if p.IsUnlimited {
			statuses = append(statuses, status)
			continue
		}

		tracker, ok := trackers[p.ProviderID]
		if ok && tracker.ShouldReset(now) {
			tracker = tracker.Reset(now)
		}
		if ok {
			status.RequestsMade = tracker.RequestsMade()
			status.RemainingQuota = tracker.RemainingQuota()
			status.UsagePercentage = tracker.UsagePercentage()
			status.IsExhausted = tracker.IsExhausted()
		} else {
			status.RemainingQuota = p.MonthlyQuota
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
