package mapping

import (
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/models"
)

// ToModelRateSettings converts domain RateSettings to a model RateSettings
func ToModelRateSettings(d domain.RateSettings) models.RateSettings {
	return models.RateSettings{
		TenantID:          d.TenantID,
		Mode:              string(d.Mode),
		ManualRate:        d.ManualRate,
		CurrentRate:       d.CurrentRate,
		CurrentRateSource: string(d.CurrentRateSource),
		CurrentRateAt:     d.CurrentRateAt,
		ActiveProviderID:  d.ActiveProviderID,
		AutoUpdateEnabled: d.AutoUpdateEnabled,
		AutoUpdateTime:    d.AutoUpdateTime,
		LastUpdatedAt:     d.LastUpdatedAt,
	}
}

// ToDomainRateSettings converts a model RateSettings to domain RateSettings
func ToDomainRateSettings(m models.RateSettings) domain.RateSettings {
	return domain.RateSettings{
		TenantID:          m.TenantID,
		Mode:              domain.RateMode(m.Mode),
		ManualRate:        m.ManualRate,
		CurrentRate:       m.CurrentRate,
		CurrentRateSource: domain.RateSource(m.CurrentRateSource),
		CurrentRateAt:     m.CurrentRateAt,
		ActiveProviderID:  m.ActiveProviderID,
		AutoUpdateEnabled: m.AutoUpdateEnabled,
		AutoUpdateTime:    m.AutoUpdateTime,
		LastUpdatedAt:     m.LastUpdatedAt,
	}
}
