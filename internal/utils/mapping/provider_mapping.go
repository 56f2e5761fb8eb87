package mapping

import (
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/models"
)

// ToModelProvider converts a domain Provider to a model Provider
func ToModelProvider(d domain.Provider) models.Provider {
	return models.Provider{
		ProviderID:        d.ProviderID,
		TenantID:          d.TenantID,
		Code:              d.Code,
		Name:              d.Name,
		APIURL:            d.APIURL,
		RequiresAPIKey:    d.RequiresAPIKey,
		APIKeyRef:         d.APIKeyRef,
		IsUnlimited:       d.IsUnlimited,
		MonthlyQuota:      d.MonthlyQuota,
		Priority:          d.Priority,
		IsEnabled:         d.IsEnabled,
		WarningThreshold:  d.WarningThreshold,
		CriticalThreshold: d.CriticalThreshold,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProvider converts a model Provider to a domain Provider
func ToDomainProvider(m models.Provider) domain.Provider {
	return domain.Provider{
		ProviderID:        m.ProviderID,
		TenantID:          m.TenantID,
		Code:              m.Code,
		Name:              m.Name,
		APIURL:            m.APIURL,
		RequiresAPIKey:    m.RequiresAPIKey,
		APIKeyRef:         m.APIKeyRef,
		IsUnlimited:       m.IsUnlimited,
		MonthlyQuota:      m.MonthlyQuota,
		Priority:          m.Priority,
		IsEnabled:         m.IsEnabled,
		WarningThreshold:  m.WarningThreshold,
		CriticalThreshold: m.CriticalThreshold,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
