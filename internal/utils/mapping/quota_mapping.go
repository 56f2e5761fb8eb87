package mapping

import (
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/models"
)

// ToDomainQuotaTracker converts a model QuotaTracking row to a domain tracker
func ToDomainQuotaTracker(m models.QuotaTracking) domain.QuotaTracker {
	return domain.NewQuotaTracker(m.RequestsMade, m.QuotaLimit, m.Year, time.Month(m.Month), m.LastResetAt)
}

// ToModelQuotaTracking converts a domain tracker to a model QuotaTracking row
func ToModelQuotaTracking(tenantID, providerID string, t domain.QuotaTracker) models.QuotaTracking {
	return models.QuotaTracking{
		TenantID:     tenantID,
		ProviderID:   providerID,
		Year:         t.Year(),
		Month:        int(t.Month()),
		RequestsMade: t.RequestsMade(),
		QuotaLimit:   t.QuotaLimit(),
		LastResetAt:  t.LastResetAt(),
	}
}
