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
	"github.com/shopspring/decimal"
)

// Metadata keys recorded on api_request history entries.
const (
	metaOutcome  = "outcome"
	metaError    = "error"
	metaProvider = "provider"

	outcomeSuccess      = "success"
	outcomeFetchFailed  = "fetch_failed"
	outcomeSkippedQuota = "skipped_quota"
)

// RateService is the acquisition orchestrator: it selects a rate source per
// the tenant's mode, walks the provider registry in priority order under the
// monthly quota rules, and falls back to the cached rate when every provider
// is unusable.
type RateService struct {
	settingsRepo   portsrepo.SettingsRepositoryFacade
	providerRepo   portsrepo.ProviderRepositoryFacade
	quotaRepo      portsrepo.QuotaRepositoryFacade
	historyRepo    portsrepo.HistoryRepositoryFacade
	fetcher        ports.RateFetcher
	clock          ports.Clock
	validator      *ValidationService
	locks          *tenantLocks
	maxRateAgeDays int
	logger         *slog.Logger
}

// NewRateService creates a new RateService.
func NewRateService(
	repos portsrepo.RepositoryProvider,
	fetcher ports.RateFetcher,
	clock ports.Clock,
	validator *ValidationService,
	maxRateAgeDays int,
	logger *slog.Logger,
) *RateService {
	return &RateService{
		settingsRepo:   repos.SettingsRepo,
		providerRepo:   repos.ProviderRepo,
		quotaRepo:      repos.QuotaRepo,
		historyRepo:    repos.HistoryRepo,
		fetcher:        fetcher,
		clock:          clock,
		validator:      validator,
		locks:          newTenantLocks(),
		maxRateAgeDays: maxRateAgeDays,
		logger:         logger,
	}
}

// GetCurrentRate resolves the tenant's current rate per its configured mode.
// Acquisition cycles for one tenant are serialized; overlapping triggers wait
// rather than racing the quota counters.
func (s *RateService) GetCurrentRate(ctx context.Context, tenantID string) (*domain.ExchangeRate, error) {
	release := s.locks.acquire(tenantID)
	defer release()

	settings, err := s.settingsRepo.FindSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNoRateAvailableError(apperrors.NoRateNoProviders)
		}
		return nil, fmt.Errorf("failed to load rate settings: %w", err)
	}

	if settings.Mode == domain.ModeManual {
		if err := s.validator.ValidateManualRate(settings.ManualRate, true); err != nil {
			s.logger.Error("invalid manual rate configured",
				slog.String("tenant_id", tenantID),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		// Manual resolution never touches providers or quota.
		return domain.NewExchangeRate(*settings.ManualRate, s.clock.Now(), domain.SourceManual, "")
	}

	return s.acquireFromProviders(ctx, tenantID, settings)
}

// Convert resolves the current rate and converts amount with it.
func (s *RateService) Convert(ctx context.Context, tenantID string, amount decimal.Decimal) (decimal.Decimal, *domain.ExchangeRate, error) {
	if amount.IsNegative() {
		return decimal.Zero, nil, apperrors.NewValidationError("amount to convert cannot be negative")
	}
	rate, err := s.GetCurrentRate(ctx, tenantID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	converted, err := rate.Convert(amount)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return converted, rate, nil
}

// acquireFromProviders walks enabled providers in priority order. Each
// provider gets exactly one attempt per cycle; quota exhaustion and fetch
// failures are recovered internally by advancing to the next provider.
func (s *RateService) acquireFromProviders(ctx context.Context, tenantID string, settings *domain.RateSettings) (*domain.ExchangeRate, error) {
	providers, err := s.providerRepo.ListEnabledProviders(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	if len(providers) == 0 {
		return s.fallbackToCached(ctx, tenantID, settings, apperrors.NoRateNoProviders)
	}

	for _, provider := range providers {
		rate, ok := s.tryProvider(ctx, tenantID, provider)
		if !ok {
			continue
		}

		if err := s.recordSuccess(ctx, tenantID, settings, provider, rate); err != nil {
			return nil, err
		}
		return domain.NewExchangeRate(rate, s.clock.Now(), domain.SourceAPI, provider.Code)
	}

	return s.fallbackToCached(ctx, tenantID, settings, apperrors.NoRateAllProvidersExhausted)
}

// tryProvider attempts one provider: quota gate, fetch, validation. A false
// return means the caller should advance to the next provider.
func (s *RateService) tryProvider(ctx context.Context, tenantID string, provider domain.Provider) (decimal.Decimal, bool) {
	if !provider.IsUnlimited {
		tracker, err := s.loadTracker(ctx, tenantID, provider)
		if err != nil {
			s.logger.Error("failed to load quota tracker",
				slog.String("tenant_id", tenantID),
				slog.String("provider", provider.Code),
				slog.String("error", err.Error()),
			)
			return decimal.Zero, false
		}

		if tracker.IsExhausted() {
			// Normal condition, not an error: record the skip and move on.
			s.appendAPIEvent(ctx, tenantID, provider.Code, nil, map[string]string{
				metaOutcome:  outcomeSkippedQuota,
				metaProvider: provider.Name,
			})
			s.logger.Info("provider skipped, monthly quota exhausted",
				slog.String("tenant_id", tenantID),
				slog.String("provider", provider.Code),
				slog.Int("quota_limit", tracker.QuotaLimit()),
			)
			return decimal.Zero, false
		}
	}

	rate, err := s.fetcher.Fetch(ctx, provider)
	if err != nil {
		s.appendAPIEvent(ctx, tenantID, provider.Code, nil, map[string]string{
			metaOutcome:  outcomeFetchFailed,
			metaProvider: provider.Name,
			metaError:    err.Error(),
		})
		s.logger.Warn("provider fetch failed",
			slog.String("tenant_id", tenantID),
			slog.String("provider", provider.Code),
			slog.String("error", err.Error()),
		)
		return decimal.Zero, false
	}

	if err := s.validator.ValidateAPIRate(rate, provider.Code); err != nil {
		s.appendAPIEvent(ctx, tenantID, provider.Code, nil, map[string]string{
			metaOutcome:  outcomeFetchFailed,
			metaProvider: provider.Name,
			metaError:    err.Error(),
		})
		s.logger.Warn("provider returned invalid rate",
			slog.String("tenant_id", tenantID),
			slog.String("provider", provider.Code),
			slog.String("rate", rate.String()),
		)
		return decimal.Zero, false
	}

	return rate, true
}

// loadTracker fetches the provider's tracker, applying the calendar-month
// reset first when due. A provider with no recorded usage gets a fresh
// zero-usage tracker for the current month.
func (s *RateService) loadTracker(ctx context.Context, tenantID string, provider domain.Provider) (domain.QuotaTracker, error) {
	now := s.clock.Now()

	tracker, err := s.quotaRepo.FindTracker(ctx, tenantID, provider.ProviderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewQuotaTracker(0, provider.MonthlyQuota, now.Year(), now.Month(), now), nil
		}
		return domain.QuotaTracker{}, err
	}

	if tracker.ShouldReset(now) {
		fresh := tracker.Reset(now)
		if err := s.quotaRepo.SaveTracker(ctx, tenantID, provider.ProviderID, fresh); err != nil {
			return domain.QuotaTracker{}, err
		}
		return fresh, nil
	}
	return *tracker, nil
}

// recordSuccess applies the bookkeeping for a successful fetch: quota
// increment, history, settings cache update, and the provider-switch event
// when the resolved provider differs from the previously active one.
func (s *RateService) recordSuccess(ctx context.Context, tenantID string, settings *domain.RateSettings, provider domain.Provider, rate decimal.Decimal) error {
	now := s.clock.Now()

	if !provider.IsUnlimited {
		if _, err := s.quotaRepo.IncrementUsage(ctx, tenantID, provider.ProviderID, now.Year(), now.Month(), provider.MonthlyQuota, 1, now); err != nil {
			return fmt.Errorf("failed to increment provider quota: %w", err)
		}
	}

	s.appendAPIEvent(ctx, tenantID, provider.Code, &rate, map[string]string{
		metaOutcome:  outcomeSuccess,
		metaProvider: provider.Name,
	})

	if err := s.settingsRepo.UpdateCurrentRate(ctx, tenantID, rate, domain.SourceAPI, now); err != nil {
		return fmt.Errorf("failed to store resolved rate: %w", err)
	}

	if settings.CurrentRate == nil || !settings.CurrentRate.Equal(rate) {
		previousRate := ""
		if settings.CurrentRate != nil {
			previousRate = settings.CurrentRate.String()
		}
		s.appendHistory(ctx, domain.HistoryEntry{
			TenantID:     tenantID,
			Rate:         &rate,
			ProviderCode: &provider.Code,
			Source:       domain.SourceAPI,
			EventType:    domain.EventRateChange,
			Metadata: map[string]string{
				"old_rate":   previousRate,
				"new_rate":   rate.String(),
				metaProvider: provider.Name,
			},
			CreatedAt: now,
		})
	}

	if settings.ActiveProviderID == nil || *settings.ActiveProviderID != provider.ProviderID {
		if err := s.settingsRepo.UpdateActiveProvider(ctx, tenantID, provider.ProviderID, now); err != nil {
			return fmt.Errorf("failed to switch active provider: %w", err)
		}
		previous := ""
		if settings.ActiveProviderID != nil {
			previous = *settings.ActiveProviderID
		}
		s.appendHistory(ctx, domain.HistoryEntry{
			TenantID:     tenantID,
			Rate:         &rate,
			ProviderCode: &provider.Code,
			Source:       domain.SourceAPI,
			EventType:    domain.EventProviderSwitch,
			Metadata: map[string]string{
				"from_provider_id": previous,
				"to_provider_id":   provider.ProviderID,
				metaProvider:       provider.Name,
			},
			CreatedAt: now,
		})
		s.logger.Info("active provider switched",
			slog.String("tenant_id", tenantID),
			slog.String("provider", provider.Code),
		)
	}

	return nil
}

// fallbackToCached returns the last resolved rate when it is still within the
// tolerated age; a stale or missing cached rate ends the cycle with an error.
// When the settings cache is empty, the most recent rate-bearing history
// entry serves as the fallback source.
func (s *RateService) fallbackToCached(ctx context.Context, tenantID string, settings *domain.RateSettings, reason apperrors.NoRateReason) (*domain.ExchangeRate, error) {
	cachedRate := settings.CurrentRate
	cachedAt := settings.CurrentRateAt
	providerCode := ""

	if cachedRate == nil || cachedAt == nil {
		entry, err := s.historyRepo.FindLatestRate(ctx, tenantID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				if reason == apperrors.NoRateNoProviders {
					return nil, apperrors.NewNoRateAvailableError(apperrors.NoRateNoProviders)
				}
				return nil, apperrors.NewNoRateAvailableError(apperrors.NoRateNoCachedRate)
			}
			return nil, fmt.Errorf("failed to load last recorded rate: %w", err)
		}
		cachedRate = entry.Rate
		createdAt := entry.CreatedAt
		cachedAt = &createdAt
		if entry.ProviderCode != nil {
			providerCode = *entry.ProviderCode
		}
	}

	if err := s.validator.ValidateRateAge(*cachedAt, s.maxRateAgeDays); err != nil {
		s.logger.Error("cached rate too stale for fallback",
			slog.String("tenant_id", tenantID),
			slog.Time("rate_date", *cachedAt),
			slog.Int("max_age_days", s.maxRateAgeDays),
		)
		return nil, err
	}

	s.logger.Warn("all providers unusable, serving cached rate",
		slog.String("tenant_id", tenantID),
		slog.String("reason", string(reason)),
		slog.String("rate", cachedRate.String()),
	)
	return domain.NewExchangeRate(*cachedRate, *cachedAt, domain.SourceCached, providerCode)
}

// appendAPIEvent writes an api_request history entry. History writes on the
// failure paths are best-effort: a logging failure must not abort the cycle.
func (s *RateService) appendAPIEvent(ctx context.Context, tenantID, providerCode string, rate *decimal.Decimal, metadata map[string]string) {
	s.appendHistory(ctx, domain.HistoryEntry{
		TenantID:     tenantID,
		Rate:         rate,
		ProviderCode: &providerCode,
		Source:       domain.SourceAPI,
		EventType:    domain.EventAPIRequest,
		Metadata:     metadata,
		CreatedAt:    s.clock.Now(),
	})
}

func (s *RateService) appendHistory(ctx context.Context, entry domain.HistoryEntry) {
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if err := s.historyRepo.AppendEntry(ctx, entry); err != nil {
		s.logger.Error("failed to append history entry",
			slog.String("tenant_id", entry.TenantID),
			slog.String("event_type", string(entry.EventType)),
			slog.String("error", err.Error()),
		)
	}
}
