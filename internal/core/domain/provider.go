package domain

// Provider is a tenant-scoped configuration for one external exchange-rate
// source. Lower Priority means the provider is tried earlier; ties are broken
// by registration order.
type Provider struct {
	ProviderID        string `json:"providerID"` // Primary Key (UUID)
	TenantID          string `json:"tenantID"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	APIURL            string `json:"apiUrl"`
	RequiresAPIKey    bool   `json:"requiresApiKey"`
	APIKeyRef         string `json:"-"` // reference to the stored credential, never serialized
	IsUnlimited       bool   `json:"isUnlimited"`
	MonthlyQuota      int    `json:"monthlyQuota"`
	Priority          int    `json:"priority"`
	IsEnabled         bool   `json:"isEnabled"`
	WarningThreshold  int    `json:"warningThreshold"`  // informational, surfaced via quota status
	CriticalThreshold int    `json:"criticalThreshold"` // informational, surfaced via quota status
	AuditFields
}
