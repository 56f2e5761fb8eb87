package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/core/ports"
	portssvc "github.com/ratewise/rate_engine_app/internal/core/ports/services"
	"github.com/ratewise/rate_engine_app/internal/core/services"
	"github.com/ratewise/rate_engine_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProviderServiceTestSuite struct {
	suite.Suite
	mockProviderRepo *MockProviderRepository
	mockSettingsRepo *MockSettingsRepository
	mockQuotaRepo    *MockQuotaRepository
	service          portssvc.ProviderSvcFacade

	tenantID string
	now      time.Time
}

func (suite *ProviderServiceTestSuite) SetupTest() {
	suite.mockProviderRepo = new(MockProviderRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockQuotaRepo = new(MockQuotaRepository)

	suite.tenantID = "tenant-1"
	suite.now = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewProviderService(
		suite.mockProviderRepo, suite.mockSettingsRepo, suite.mockQuotaRepo,
		&ports.FixedClock{Instant: suite.now}, newTestLogger())
}

func (suite *ProviderServiceTestSuite) TestCreateProvider_Success() {
	req := dto.CreateProviderRequest{
		Name:         "Open Exchange Rates",
		Code:         "openexchange",
		APIURL:       "https://openexchangerates.org/api/latest.json",
		APIKey:       "secret-key",
		MonthlyQuota: 1000,
		Priority:     1,
	}
	suite.mockProviderRepo.On("FindProviderByName", mock.Anything, suite.tenantID, req.Name).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProviderRepo.On("SaveProvider", mock.Anything, mock.MatchedBy(func(p domain.Provider) bool {
		return p.ProviderID != "" &&
			p.TenantID == suite.tenantID &&
			p.Code == req.Code &&
			p.IsEnabled &&
			p.MonthlyQuota == 1000 &&
			p.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()

	resp, err := suite.service.CreateProvider(context.Background(), suite.tenantID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(resp.ProviderID)
	suite.True(resp.HasAPIKey)
	suite.Require().NotNil(resp.RemainingQuota)
	suite.Equal(1000, *resp.RemainingQuota)
	suite.mockProviderRepo.AssertExpectations(suite.T())
}

func (suite *ProviderServiceTestSuite) TestCreateProvider_DuplicateName() {
	req := dto.CreateProviderRequest{
		Name:         "Open Exchange Rates",
		Code:         "openexchange",
		APIURL:       "https://openexchangerates.org/api/latest.json",
		MonthlyQuota: 1000,
	}
	suite.mockProviderRepo.On("FindProviderByName", mock.Anything, suite.tenantID, req.Name).
		Return(&domain.Provider{ProviderID: "prov-1", Name: req.Name}, nil).Once()

	_, err := suite.service.CreateProvider(context.Background(), suite.tenantID, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrDuplicate))
	suite.mockProviderRepo.AssertNotCalled(suite.T(), "SaveProvider", mock.Anything, mock.Anything)
}

func (suite *ProviderServiceTestSuite) TestCreateProvider_LimitedRequiresQuota() {
	req := dto.CreateProviderRequest{
		Name:   "Fixer",
		Code:   "fixer",
		APIURL: "https://data.fixer.io/api/latest",
	}
	suite.mockProviderRepo.On("FindProviderByName", mock.Anything, suite.tenantID, req.Name).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateProvider(context.Background(), suite.tenantID, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *ProviderServiceTestSuite) TestListProviders_AnnotatesRemainingQuota() {
	p1 := domain.Provider{ProviderID: "prov-1", Code: "openexchange", MonthlyQuota: 100, Priority: 1}
	p2 := domain.Provider{ProviderID: "prov-2", Code: "frankfurter", IsUnlimited: true, Priority: 2}
	p3 := domain.Provider{ProviderID: "prov-3", Code: "fixer", MonthlyQuota: 50, Priority: 3}

	suite.mockProviderRepo.On("ListProviders", mock.Anything, suite.tenantID).
		Return([]domain.Provider{p1, p2, p3}, nil).Once()
	suite.mockQuotaRepo.On("ListTrackers", mock.Anything, suite.tenantID).
		Return(map[string]domain.QuotaTracker{
			// p1 has current-month usage; p3 only has a stale February row.
			"prov-1": domain.NewQuotaTracker(30, 100, 2026, time.March, suite.now),
			"prov-3": domain.NewQuotaTracker(50, 50, 2026, time.February, suite.now.AddDate(0, -1, 0)),
		}, nil).Once()

	resp, err := suite.service.ListProviders(context.Background(), suite.tenantID)

	suite.Require().NoError(err)
	suite.Require().Len(resp, 3)
	suite.Require().NotNil(resp[0].RemainingQuota)
	suite.Equal(70, *resp[0].RemainingQuota)
	suite.Nil(resp[1].RemainingQuota)
	suite.Require().NotNil(resp[2].RemainingQuota)
	suite.Equal(50, *resp[2].RemainingQuota, "stale tracker must read as a fresh month")
}

func (suite *ProviderServiceTestSuite) TestUpdateProvider_PartialPatch() {
	existing := domain.Provider{
		ProviderID:   "prov-1",
		TenantID:     suite.tenantID,
		Code:         "openexchange",
		Name:         "Open Exchange Rates",
		MonthlyQuota: 100,
		Priority:     1,
		IsEnabled:    true,
	}
	newPriority := 5
	disabled := false

	suite.mockProviderRepo.On("FindProviderByID", mock.Anything, suite.tenantID, existing.ProviderID).
		Return(&existing, nil).Once()
	suite.mockProviderRepo.On("UpdateProvider", mock.Anything, mock.MatchedBy(func(p domain.Provider) bool {
		return p.Priority == 5 && !p.IsEnabled && p.Name == existing.Name &&
			p.MonthlyQuota == 100 && p.UpdatedAt.Equal(suite.now)
	})).Return(nil).Once()

	resp, err := suite.service.UpdateProvider(context.Background(), suite.tenantID, existing.ProviderID, dto.UpdateProviderRequest{
		Priority:  &newPriority,
		IsEnabled: &disabled,
	})

	suite.Require().NoError(err)
	suite.Equal(5, resp.Priority)
	suite.False(resp.IsEnabled)
	suite.mockProviderRepo.AssertExpectations(suite.T())
}

func (suite *ProviderServiceTestSuite) TestUpdateProvider_NotFound() {
	suite.mockProviderRepo.On("FindProviderByID", mock.Anything, suite.tenantID, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateProvider(context.Background(), suite.tenantID, "missing", dto.UpdateProviderRequest{})

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *ProviderServiceTestSuite) TestDeleteProvider_Success() {
	providerID := "prov-2"
	activeID := "prov-1"
	suite.mockProviderRepo.On("FindProviderByID", mock.Anything, suite.tenantID, providerID).
		Return(&domain.Provider{ProviderID: providerID}, nil).Once()
	suite.mockSettingsRepo.On("FindSettings", mock.Anything, suite.tenantID).
		Return(&domain.RateSettings{TenantID: suite.tenantID, ActiveProviderID: &activeID}, nil).Once()
	suite.mockProviderRepo.On("DeleteProvider", mock.Anything, suite.tenantID, providerID).
		Return(nil).Once()

	err := suite.service.DeleteProvider(context.Background(), suite.tenantID, providerID)

	suite.Require().NoError(err)
	suite.mockProviderRepo.AssertExpectations(suite.T())
}

func (suite *ProviderServiceTestSuite) TestDeleteProvider_BlockedWhenActive() {
	providerID := "prov-1"
	suite.mockProviderRepo.On("FindProviderByID", mock.Anything, suite.tenantID, providerID).
		Return(&domain.Provider{ProviderID: providerID}, nil).Once()
	suite.mockSettingsRepo.On("FindSettings", mock.Anything, suite.tenantID).
		Return(&domain.RateSettings{TenantID: suite.tenantID, ActiveProviderID: &providerID}, nil).Once()

	err := suite.service.DeleteProvider(context.Background(), suite.tenantID, providerID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockProviderRepo.AssertNotCalled(suite.T(), "DeleteProvider", mock.Anything, mock.Anything, mock.Anything)
}

func TestProviderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderServiceTestSuite))
}
