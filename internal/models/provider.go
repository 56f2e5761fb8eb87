package models

// Provider stores one exchange-rate provider configuration row.
// Note: APIKeyRef holds a secret reference and must never be serialized.
type Provider struct {
	ProviderID        string `json:"providerID"` // Primary Key (UUID)
	TenantID          string `json:"tenantID"`
	Code              string `json:"code"`
	Name              string `json:"name"` // Unique per tenant
	APIURL            string `json:"apiUrl"`
	RequiresAPIKey    bool   `json:"requiresApiKey"`
	APIKeyRef         string `json:"-"`
	IsUnlimited       bool   `json:"isUnlimited"`
	MonthlyQuota      int    `json:"monthlyQuota"`
	Priority          int    `json:"priority"` // Lower value is tried first
	IsEnabled         bool   `json:"isEnabled"`
	WarningThreshold  int    `json:"warningThreshold"`
	CriticalThreshold int    `json:"criticalThreshold"`
	AuditFields
}
