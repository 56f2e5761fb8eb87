package dto

import (
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse is the API view of a resolved exchange rate.
type RateResponse struct {
	Rate         decimal.Decimal   `json:"rate"`
	Source       domain.RateSource `json:"source"`
	ProviderCode string            `json:"providerCode,omitempty"`
	FetchedAt    time.Time         `json:"fetchedAt"`
	IsStale      bool              `json:"isStale"`
	AgeHours     int               `json:"ageHours"`
}

// ToRateResponse converts a rate snapshot to the API response shape.
func ToRateResponse(snap domain.RateSnapshot) RateResponse {
	return RateResponse{
		Rate:         snap.Rate,
		Source:       snap.Source,
		ProviderCode: snap.ProviderCode,
		FetchedAt:    snap.FetchedAt,
		IsStale:      snap.IsStale,
		AgeHours:     snap.AgeHours,
	}
}

// ConvertRequest asks for an amount conversion at the tenant's current rate.
type ConvertRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ConvertResponse carries the converted amount and the rate that produced it.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Converted decimal.Decimal `json:"converted"`
	Rate      RateResponse    `json:"rate"`
}
