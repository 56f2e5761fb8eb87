package models

import "time"

// QuotaTracking stores one provider's usage counter for one calendar month.
// Rows are keyed by (tenant_id, provider_id, year, month).
type QuotaTracking struct {
	TenantID     string    `json:"tenantID"`
	ProviderID   string    `json:"providerID"` // FK -> Provider.providerID
	Year         int       `json:"year"`
	Month        int       `json:"month"` // 1..12
	RequestsMade int       `json:"requestsMade"`
	QuotaLimit   int       `json:"quotaLimit"`
	LastResetAt  time.Time `json:"lastResetAt"`
}
