package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSettings stores one tenant's exchange-rate configuration row.
type RateSettings struct {
	TenantID          string           `json:"tenantID"` // Primary Key
	Mode              string           `json:"mode"`     // manual | auto
	ManualRate        *decimal.Decimal `json:"manualRate"`
	CurrentRate       *decimal.Decimal `json:"currentRate"`
	CurrentRateSource string           `json:"currentRateSource"`
	CurrentRateAt     *time.Time       `json:"currentRateAt"`
	ActiveProviderID  *string          `json:"activeProviderID"` // FK -> Provider.providerID
	AutoUpdateEnabled bool             `json:"autoUpdateEnabled"`
	AutoUpdateTime    string           `json:"autoUpdateTime"` // "HH:MM"
	LastUpdatedAt     time.Time        `json:"lastUpdatedAt"`
}
