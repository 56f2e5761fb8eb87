package services_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	portsrepo "github.com/ratewise/rate_engine_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindSettings(ctx context.Context, tenantID string) (*domain.RateSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.RateSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) UpdateCurrentRate(ctx context.Context, tenantID string, rate decimal.Decimal, source domain.RateSource, resolvedAt time.Time) error {
	args := m.Called(ctx, tenantID, rate, source, resolvedAt)
	return args.Error(0)
}

func (m *MockSettingsRepository) UpdateActiveProvider(ctx context.Context, tenantID, providerID string, updatedAt time.Time) error {
	args := m.Called(ctx, tenantID, providerID, updatedAt)
	return args.Error(0)
}

// --- Mock ProviderRepository ---
type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) FindProviderByID(ctx context.Context, tenantID, providerID string) (*domain.Provider, error) {
	args := m.Called(ctx, tenantID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) ListProviders(ctx context.Context, tenantID string) ([]domain.Provider, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) ListEnabledProviders(ctx context.Context, tenantID string) ([]domain.Provider, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) FindProviderByName(ctx context.Context, tenantID, name string) (*domain.Provider, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) SaveProvider(ctx context.Context, provider domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) UpdateProvider(ctx context.Context, provider domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) DeleteProvider(ctx context.Context, tenantID, providerID string) error {
	args := m.Called(ctx, tenantID, providerID)
	return args.Error(0)
}

// --- Mock QuotaRepository ---
type MockQuotaRepository struct {
	mock.Mock
}

func (m *MockQuotaRepository) FindTracker(ctx context.Context, tenantID, providerID string) (*domain.QuotaTracker, error) {
	args := m.Called(ctx, tenantID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuotaTracker), args.Error(1)
}

func (m *MockQuotaRepository) ListTrackers(ctx context.Context, tenantID string) (map[string]domain.QuotaTracker, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.QuotaTracker), args.Error(1)
}

func (m *MockQuotaRepository) SaveTracker(ctx context.Context, tenantID, providerID string, tracker domain.QuotaTracker) error {
	args := m.Called(ctx, tenantID, providerID, tracker)
	return args.Error(0)
}

func (m *MockQuotaRepository) IncrementUsage(ctx context.Context, tenantID, providerID string, year int, month time.Month, quotaLimit, n int, now time.Time) (domain.QuotaTracker, error) {
	args := m.Called(ctx, tenantID, providerID, year, month, quotaLimit, n, now)
	return args.Get(0).(domain.QuotaTracker), args.Error(1)
}

// --- Mock HistoryRepository ---
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) AppendEntry(ctx context.Context, entry domain.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindEntries(ctx context.Context, tenantID string, filter portsrepo.HistoryFilter) ([]domain.HistoryEntry, string, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.HistoryEntry), args.String(1), args.Error(2)
}

func (m *MockHistoryRepository) FindLatestRate(ctx context.Context, tenantID string) (*domain.HistoryEntry, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryEntry), args.Error(1)
}

// --- Mock RateFetcher ---
type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) Fetch(ctx context.Context, provider domain.Provider) (decimal.Decimal, error) {
	args := m.Called(ctx, provider)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
