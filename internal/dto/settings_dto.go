package dto

import (
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateRateSettingsRequest switches the tenant's rate mode and related knobs.
// ManualRate is required when switching to manual mode; ActiveProviderID is
// required when switching to auto mode.
type UpdateRateSettingsRequest struct {
	Mode              string           `json:"mode" binding:"required,oneof=manual auto"`
	ManualRate        *decimal.Decimal `json:"manualRate,omitempty"`
	ActiveProviderID  *string          `json:"activeProviderID,omitempty"`
	AutoUpdateEnabled *bool            `json:"autoUpdateEnabled,omitempty"`
	AutoUpdateTime    *string          `json:"autoUpdateTime,omitempty" binding:"omitempty,datetime=15:04"`
}

// RateSettingsResponse is the API view of a tenant's rate settings.
type RateSettingsResponse struct {
	Mode              domain.RateMode  `json:"mode"`
	ManualRate        *decimal.Decimal `json:"manualRate,omitempty"`
	CurrentRate       *decimal.Decimal `json:"currentRate,omitempty"`
	CurrentRateAt     *time.Time       `json:"currentRateAt,omitempty"`
	ActiveProviderID  *string          `json:"activeProviderID,omitempty"`
	AutoUpdateEnabled bool             `json:"autoUpdateEnabled"`
	AutoUpdateTime    string           `json:"autoUpdateTime,omitempty"`
	LastUpdatedAt     time.Time        `json:"lastUpdatedAt"`
}

// ToRateSettingsResponse converts domain settings to the API response shape.
func ToRateSettingsResponse(s *domain.RateSettings) RateSettingsResponse {
	return RateSettingsResponse{
		Mode:              s.Mode,
		ManualRate:        s.ManualRate,
		CurrentRate:       s.CurrentRate,
		CurrentRateAt:     s.CurrentRateAt,
		ActiveProviderID:  s.ActiveProviderID,
		AutoUpdateEnabled: s.AutoUpdateEnabled,
		AutoUpdateTime:    s.AutoUpdateTime,
		LastUpdatedAt:     s.LastUpdatedAt,
	}
}
