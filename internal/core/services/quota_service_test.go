package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/core/ports"
	portssvc "github.com/ratewise/rate_engine_app/internal/core/ports/services"
	"github.com/ratewise/rate_engine_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type QuotaServiceTestSuite struct {
	suite.Suite
	mockProviderRepo *MockProviderRepository
	mockQuotaRepo    *MockQuotaRepository
	service          portssvc.QuotaSvcFacade

	tenantID string
	now      time.Time
}

func (suite *QuotaServiceTestSuite) SetupTest() {
	suite.mockProviderRepo = new(MockProviderRepository)
	suite.mockQuotaRepo = new(MockQuotaRepository)

	suite.tenantID = "tenant-1"
	suite.now = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewQuotaService(
		suite.mockProviderRepo, suite.mockQuotaRepo,
		&ports.FixedClock{Instant: suite.now}, newTestLogger())
}

func (suite *QuotaServiceTestSuite) TestGetQuotaStatus() {
	providers := []domain.Provider{
		{ProviderID: "prov-1", Code: "openexchange", Name: "Open Exchange Rates", MonthlyQuota: 100, Priority: 1, WarningThreshold: 70, CriticalThreshold: 90},
		{ProviderID: "prov-2", Code: "frankfurter", Name: "Frankfurter", IsUnlimited: true, Priority: 2},
		{ProviderID: "prov-3", Code: "fixer", Name: "Fixer", MonthlyQuota: 50, Priority: 3},
		{ProviderID: "prov-4", Code: "currencyapi", Name: "CurrencyAPI", MonthlyQuota: 200, Priority: 4},
	}
	suite.mockProviderRepo.On("ListProviders", mock.Anything, suite.tenantID).Return(providers, nil).Once()
	suite.mockQuotaRepo.On("ListTrackers", mock.Anything, suite.tenantID).Return(map[string]domain.QuotaTracker{
		"prov-1": domain.NewQuotaTracker(75, 100, 2026, time.March, suite.now),
		// prov-3 exhausted itself back in February; the new month shows fresh.
		"prov-3": domain.NewQuotaTracker(50, 50, 2026, time.February, suite.now.AddDate(0, -1, 0)),
		// prov-4 has never been used: no row at all.
	}, nil).Once()

	statuses, err := suite.service.GetQuotaStatus(context.Background(), suite.tenantID)

	suite.Require().NoError(err)
	suite.Require().Len(statuses, 4)

	limited := statuses[0]
	suite.Equal("openexchange", limited.ProviderCode)
	suite.Equal(75, limited.RequestsMade)
	suite.Equal(25, limited.RemainingQuota)
	suite.InDelta(75.0, limited.UsagePercentage, 0.001)
	suite.False(limited.IsExhausted)
	suite.Equal(70, limited.WarningThreshold)
	suite.Equal(90, limited.CriticalThreshold)

	unlimited := statuses[1]
	suite.True(unlimited.IsUnlimited)
	suite.Zero(unlimited.RequestsMade)
	suite.False(unlimited.IsExhausted)

	reset := statuses[2]
	suite.Equal(0, reset.RequestsMade)
	suite.Equal(50, reset.RemainingQuota)
	suite.False(reset.IsExhausted)

	unused := statuses[3]
	suite.Equal(0, unused.RequestsMade)
	suite.Equal(200, unused.RemainingQuota)
}

func (suite *QuotaServiceTestSuite) TestGetQuotaStatus_ExhaustedProvider() {
	providers := []domain.Provider{
		{ProviderID: "prov-1", Code: "openexchange", Name: "Open Exchange Rates", MonthlyQuota: 100, Priority: 1},
	}
	suite.mockProviderRepo.On("ListProviders", mock.Anything, suite.tenantID).Return(providers, nil).Once()
	suite.mockQuotaRepo.On("ListTrackers", mock.Anything, suite.tenantID).Return(map[string]domain.QuotaTracker{
		// Over-quota counts are tolerated and floor at zero remaining.
		"prov-1": domain.NewQuotaTracker(130, 100, 2026, time.March, suite.now),
	}, nil).Once()

	statuses, err := suite.service.GetQuotaStatus(context.Background(), suite.tenantID)

	suite.Require().NoError(err)
	suite.Require().Len(statuses, 1)
	suite.True(statuses[0].IsExhausted)
	suite.Equal(0, statuses[0].RemainingQuota)
	suite.InDelta(100.0, statuses[0].UsagePercentage, 0.001)
}

func TestQuotaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuotaServiceTestSuite))
}
