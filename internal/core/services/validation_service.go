package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

// Plausibility band for an IDR-per-USD rate. Manual rates outside the band are
// rejected; API rates outside it are logged and accepted.
var (
	MinReasonableRate = decimal.NewFromInt(10000)
	MaxReasonableRate = decimal.NewFromInt(25000)
)

// ValidationService provides the stateless guards for rate values, staleness
// rules and availability rules.
type ValidationService struct {
	clock  ports.Clock
	logger *slog.Logger
}

// NewValidationService creates a new ValidationService.
func NewValidationService(clock ports.Clock, logger *slog.Logger) *ValidationService {
	return &ValidationService{clock: clock, logger: logger}
}

// ValidateManualRate checks a manually configured rate. Manual rates are
// hard-bounded to the plausibility band, boundaries included.
func (s *ValidationService) ValidateManualRate(rate *decimal.Decimal, required bool) error {
	if rate == nil {
		if required {
			return apperrors.NewInvalidManualRateError(apperrors.ManualRateRequired, "a manual exchange rate is required in manual mode")
		}
		return nil
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return apperrors.NewInvalidManualRateError(apperrors.ManualRateNotPositive, "manual exchange rate must be positive")
	}
	if rate.LessThan(MinReasonableRate) {
		return apperrors.NewInvalidManualRateError(apperrors.ManualRateTooLow,
			fmt.Sprintf("manual exchange rate %s is below the minimum of %s", rate, MinReasonableRate))
	}
	if rate.GreaterThan(MaxReasonableRate) {
		return apperrors.NewInvalidManualRateError(apperrors.ManualRateTooHigh,
			fmt.Sprintf("manual exchange rate %s is above the maximum of %s", rate, MaxReasonableRate))
	}
	return nil
}

// ValidateRateAge fails with a StaleRateError when the rate date is older
// than maxAgeDays.
func (s *ValidationService) ValidateRateAge(rateDate time.Time, maxAgeDays int) error {
	age := s.clock.Now().Sub(rateDate)
	if age > time.Duration(maxAgeDays)*24*time.Hour {
		daysOld := int(age.Hours() / 24)
		return apperrors.NewStaleRateError(rateDate, maxAgeDays, daysOld)
	}
	return nil
}

// ValidateRateAvailability guards a (rate, date) pair before use. A missing
// rate or date always fails. A stale cached rate only logs a warning because
// cached data degrades gracefully; a stale api-sourced rate is a hard failure.
func (s *ValidationService) ValidateRateAvailability(rate *decimal.Decimal, rateDate *time.Time, source domain.RateSource, maxAgeDays int) error {
	if rate == nil || rateDate == nil {
		return apperrors.NewNoRateAvailableError(apperrors.NoRateNoCachedRate)
	}

	ageErr := s.ValidateRateAge(*rateDate, maxAgeDays)
	if ageErr == nil {
		return nil
	}

	if source == domain.SourceCached {
		s.logger.Warn("using stale cached exchange rate",
			slog.String("rate", rate.String()),
			slog.Time("rate_date", *rateDate),
			slog.Int("max_age_days", maxAgeDays),
		)
		return nil
	}
	return ageErr
}

// ValidateAPIRate checks a freshly fetched provider rate. Non-positive values
// are rejected; values outside the plausibility band are accepted with a
// warning, unlike manual rates.
func (s *ValidationService) ValidateAPIRate(rate decimal.Decimal, providerCode string) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return apperrors.NewInvalidManualRateError(apperrors.ManualRateNotPositive,
			fmt.Sprintf("provider %s returned a non-positive rate", providerCode))
	}
	if rate.LessThan(MinReasonableRate) || rate.GreaterThan(MaxReasonableRate) {
		s.logger.Warn("provider rate outside plausible band",
			slog.String("provider", providerCode),
			slog.String("rate", rate.String()),
			slog.String("min", MinReasonableRate.String()),
			slog.String("max", MaxReasonableRate.String()),
		)
	}
	return nil
}
