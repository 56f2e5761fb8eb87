package domain

import (
	"time"

	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RateSource identifies where an exchange rate value came from.
type RateSource string

const (
	SourceManual RateSource = "manual"
	SourceAPI    RateSource = "api"
	SourceCached RateSource = "cached"
)

// ExchangeRate is an immutable snapshot of a conversion rate, its timestamp and
// its origin. Instances are only ever replaced, never mutated.
type ExchangeRate struct {
	rate         decimal.Decimal
	fetchedAt    time.Time
	source       RateSource
	providerCode string
}

// NewExchangeRate constructs an ExchangeRate, rejecting non-positive rates.
func NewExchangeRate(rate decimal.Decimal, fetchedAt time.Time, source RateSource, providerCode string) (*ExchangeRate, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewInvalidManualRateError(apperrors.ManualRateNotPositive, "exchange rate must be positive")
	}
	return &ExchangeRate{
		rate:         rate,
		fetchedAt:    fetchedAt,
		source:       source,
		providerCode: providerCode,
	}, nil
}

func (r *ExchangeRate) Rate() decimal.Decimal { return r.rate }
func (r *ExchangeRate) FetchedAt() time.Time  { return r.fetchedAt }
func (r *ExchangeRate) Source() RateSource    { return r.source }
func (r *ExchangeRate) ProviderCode() string  { return r.providerCode }

// Convert converts an amount in the base currency using this rate, rounded to
// two decimal places. Negative amounts are rejected.
func (r *ExchangeRate) Convert(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, apperrors.NewValidationError("amount to convert cannot be negative")
	}
	return amount.Mul(r.rate).Round(2), nil
}

// IsStale reports whether the rate is older than maxAgeDays as of now.
func (r *ExchangeRate) IsStale(now time.Time, maxAgeDays int) bool {
	return now.Sub(r.fetchedAt) > time.Duration(maxAgeDays)*24*time.Hour
}

// AgeInHours returns the whole hours elapsed since the rate was fetched.
func (r *ExchangeRate) AgeInHours(now time.Time) int {
	return int(now.Sub(r.fetchedAt).Hours())
}

// RateSnapshot is the reporting view of an ExchangeRate.
type RateSnapshot struct {
	Rate         decimal.Decimal `json:"rate"`
	Source       RateSource      `json:"source"`
	ProviderCode string          `json:"providerCode,omitempty"`
	FetchedAt    time.Time       `json:"fetchedAt"`
	IsStale      bool            `json:"isStale"`
	AgeHours     int             `json:"ageHours"`
}

// Snapshot derives the reporting view of the rate as of now.
func (r *ExchangeRate) Snapshot(now time.Time, maxAgeDays int) RateSnapshot {
	return RateSnapshot{
		Rate:         r.rate,
		Source:       r.source,
		ProviderCode: r.providerCode,
		FetchedAt:    r.fetchedAt,
		IsStale:      r.IsStale(now, maxAgeDays),
		AgeHours:     r.AgeInHours(now),
	}
}
