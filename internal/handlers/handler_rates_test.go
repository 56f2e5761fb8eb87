package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/core/ports"
	portssvc "github.com/ratewise/rate_engine_app/internal/core/ports/services"
	"github.com/ratewise/rate_engine_app/internal/dto"
	"github.com/ratewise/rate_engine_app/internal/handlers"
	"github.com/ratewise/rate_engine_app/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetCurrentRate(ctx context.Context, tenantID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateService) Convert(ctx context.Context, tenantID string, amount decimal.Decimal) (decimal.Decimal, *domain.ExchangeRate, error) {
	args := m.Called(ctx, tenantID, amount)
	if args.Get(1) == nil {
		return decimal.Zero, nil, args.Error(2)
	}
	return args.Get(0).(decimal.Decimal), args.Get(1).(*domain.ExchangeRate), args.Error(2)
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

// --- Test Suite ---
type RateHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockRateService *MockRateService
	jwtSecret       string
	now             time.Time
}

func (suite *RateHandlerTestSuite) generateTestToken(tenantID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "rea-test",
		Subject:   tenantID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *RateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.now = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockRateService = new(MockRateService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterRateRoutes(v1, suite.mockRateService, 7, ports.FixedClock{Instant: suite.now})
}

func (suite *RateHandlerTestSuite) mustRate(value string, fetchedAt time.Time, source domain.RateSource, providerCode string) *domain.ExchangeRate {
	rate, err := domain.NewExchangeRate(decimal.RequireFromString(value), fetchedAt, source, providerCode)
	suite.Require().NoError(err)
	return rate
}

func (suite *RateHandlerTestSuite) doRequest(method, target string, body []byte, tenantID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(tenantID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *RateHandlerTestSuite) TestGetCurrentRate_Success() {
	tenantID := uuid.NewString()
	rate := suite.mustRate("15200", suite.now.Add(-2*time.Hour), domain.SourceAPI, "oxr")

	suite.mockRateService.On("GetCurrentRate", mock.Anything, tenantID).Return(rate, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/exchange-rate", nil, tenantID)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.RateResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Rate.Equal(decimal.RequireFromString("15200")))
	suite.Equal(domain.SourceAPI, got.Source)
	suite.Equal("oxr", got.ProviderCode)
	suite.False(got.IsStale)
	suite.Equal(2, got.AgeHours)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestGetCurrentRate_NoRateAvailable() {
	tenantID := uuid.NewString()

	suite.mockRateService.On("GetCurrentRate", mock.Anything, tenantID).
		Return(nil, apperrors.NewNoRateAvailableError(apperrors.NoRateNoProviders)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/exchange-rate", nil, tenantID)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestGetCurrentRate_MissingToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/exchange-rate", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "GetCurrentRate")
}

func (suite *RateHandlerTestSuite) TestRefreshRate_StaleCachedRejected() {
	tenantID := uuid.NewString()
	staleErr := apperrors.NewStaleRateError(suite.now.AddDate(0, 0, -10), 7, 10)

	suite.mockRateService.On("GetCurrentRate", mock.Anything, tenantID).Return(nil, staleErr).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rate/refresh", nil, tenantID)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestConvert_Success() {
	tenantID := uuid.NewString()
	rate := suite.mustRate("15000", suite.now, domain.SourceManual, "")
	amount := decimal.RequireFromString("1.23")

	suite.mockRateService.On("Convert", mock.Anything, tenantID, mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(amount)
	})).Return(decimal.RequireFromString("18450.00"), rate, nil).Once()

	body, _ := json.Marshal(dto.ConvertRequest{Amount: amount})
	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rate/convert", body, tenantID)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ConvertResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Converted.Equal(decimal.RequireFromString("18450.00")))
	suite.Equal(domain.SourceManual, got.Rate.Source)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestConvert_NegativeAmount() {
	tenantID := uuid.NewString()

	suite.mockRateService.On("Convert", mock.Anything, tenantID, mock.Anything).
		Return(decimal.Zero, nil, apperrors.NewValidationError("amount must not be negative")).Once()

	body := []byte(`{"amount": "-5"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rate/convert", body, tenantID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestConvert_MissingAmount() {
	tenantID := uuid.NewString()

	body := []byte(`{}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rate/convert", body, tenantID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "Convert")
}

func TestRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RateHandlerTestSuite))
}
