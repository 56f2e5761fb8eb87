package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateMode selects where a tenant's current rate comes from.
type RateMode string

const (
	ModeManual RateMode = "manual"
	ModeAuto   RateMode = "auto"
)

// RateSettings is the tenant-scoped exchange-rate state. One instance per
// tenant; mutated by mode/provider switches and by every successful acquisition.
type RateSettings struct {
	TenantID          string           `json:"tenantID"`
	Mode              RateMode         `json:"mode"`
	ManualRate        *decimal.Decimal `json:"manualRate,omitempty"`
	CurrentRate       *decimal.Decimal `json:"currentRate,omitempty"`
	CurrentRateSource RateSource       `json:"currentRateSource,omitempty"`
	CurrentRateAt     *time.Time       `json:"currentRateAt,omitempty"` // when CurrentRate was resolved
	ActiveProviderID  *string          `json:"activeProviderID,omitempty"`
	AutoUpdateEnabled bool             `json:"autoUpdateEnabled"`
	AutoUpdateTime    string           `json:"autoUpdateTime,omitempty"` // "HH:MM", consumed by an external scheduler
	LastUpdatedAt     time.Time        `json:"lastUpdatedAt"`
}
