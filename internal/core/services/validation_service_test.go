package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/core/ports"
	"github.com/ratewise/rate_engine_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(now time.Time) *services.ValidationService {
	return services.NewValidationService(&ports.FixedClock{Instant: now}, newTestLogger())
}

func TestValidateManualRate(t *testing.T) {
	v := newValidator(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))

	reasonOf := func(err error) apperrors.ManualRateReason {
		var invalid *apperrors.InvalidManualRateError
		require.ErrorAs(t, err, &invalid)
		return invalid.Reason
	}

	t.Run("nil and required", func(t *testing.T) {
		err := v.ValidateManualRate(nil, true)
		require.Error(t, err)
		assert.Equal(t, apperrors.ManualRateRequired, reasonOf(err))
	})

	t.Run("nil and optional", func(t *testing.T) {
		assert.NoError(t, v.ValidateManualRate(nil, false))
	})

	t.Run("below band", func(t *testing.T) {
		rate := decimal.NewFromInt(5000)
		err := v.ValidateManualRate(&rate, true)
		require.Error(t, err)
		assert.Equal(t, apperrors.ManualRateTooLow, reasonOf(err))
		assert.Contains(t, err.Error(), "10000")
	})

	t.Run("above band", func(t *testing.T) {
		rate := decimal.NewFromInt(30000)
		err := v.ValidateManualRate(&rate, true)
		require.Error(t, err)
		assert.Equal(t, apperrors.ManualRateTooHigh, reasonOf(err))
		assert.Contains(t, err.Error(), "25000")
	})

	t.Run("zero", func(t *testing.T) {
		rate := decimal.Zero
		err := v.ValidateManualRate(&rate, true)
		require.Error(t, err)
		assert.Equal(t, apperrors.ManualRateNotPositive, reasonOf(err))
	})

	t.Run("boundaries accepted", func(t *testing.T) {
		low := decimal.NewFromInt(10000)
		high := decimal.NewFromInt(25000)
		assert.NoError(t, v.ValidateManualRate(&low, true))
		assert.NoError(t, v.ValidateManualRate(&high, true))
	})

	t.Run("satisfies validation sentinel", func(t *testing.T) {
		rate := decimal.NewFromInt(-1)
		err := v.ValidateManualRate(&rate, true)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})
}

func TestValidateRateAge(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	v := newValidator(now)

	t.Run("fresh rate passes", func(t *testing.T) {
		assert.NoError(t, v.ValidateRateAge(now.AddDate(0, 0, -3), 7))
	})

	t.Run("exactly at the limit passes", func(t *testing.T) {
		assert.NoError(t, v.ValidateRateAge(now.AddDate(0, 0, -7), 7))
	})

	t.Run("beyond the limit fails", func(t *testing.T) {
		err := v.ValidateRateAge(now.AddDate(0, 0, -10), 7)
		var stale *apperrors.StaleRateError
		require.ErrorAs(t, err, &stale)
		assert.Equal(t, 7, stale.MaxAgeDays)
		assert.Equal(t, 10, stale.DaysOld)
	})
}

func TestValidateRateAvailability(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	v := newValidator(now)
	rate := decimal.NewFromInt(15000)
	staleDate := now.AddDate(0, 0, -10)
	freshDate := now.AddDate(0, 0, -1)

	t.Run("missing rate fails", func(t *testing.T) {
		err := v.ValidateRateAvailability(nil, nil, domain.SourceCached, 7)
		var noRate *apperrors.NoRateAvailableError
		require.ErrorAs(t, err, &noRate)
		assert.Equal(t, apperrors.NoRateNoCachedRate, noRate.Reason)
	})

	t.Run("fresh rate passes", func(t *testing.T) {
		assert.NoError(t, v.ValidateRateAvailability(&rate, &freshDate, domain.SourceAPI, 7))
	})

	t.Run("stale cached rate passes with warning", func(t *testing.T) {
		assert.NoError(t, v.ValidateRateAvailability(&rate, &staleDate, domain.SourceCached, 7))
	})

	t.Run("stale api rate fails", func(t *testing.T) {
		err := v.ValidateRateAvailability(&rate, &staleDate, domain.SourceAPI, 7)
		var stale *apperrors.StaleRateError
		require.ErrorAs(t, err, &stale)
	})
}

func TestValidateAPIRate(t *testing.T) {
	v := newValidator(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))

	t.Run("non-positive rejected", func(t *testing.T) {
		assert.Error(t, v.ValidateAPIRate(decimal.Zero, "openexchange"))
		assert.Error(t, v.ValidateAPIRate(decimal.NewFromInt(-100), "openexchange"))
	})

	t.Run("out of band accepted", func(t *testing.T) {
		assert.NoError(t, v.ValidateAPIRate(decimal.NewFromInt(5000), "openexchange"))
		assert.NoError(t, v.ValidateAPIRate(decimal.NewFromInt(99999), "openexchange"))
	})

	t.Run("in band accepted", func(t *testing.T) {
		assert.NoError(t, v.ValidateAPIRate(decimal.NewFromInt(15500), "openexchange"))
	})
}
