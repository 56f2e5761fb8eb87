package dto

// ProviderQuotaStatus is the per-provider view returned by the quota status
// endpoint. Thresholds are informational metadata; no behavior gates on them.
type ProviderQuotaStatus struct {
	ProviderID        string  `json:"providerID"`
	ProviderCode      string  `json:"providerCode"`
	ProviderName      string  `json:"providerName"`
	IsUnlimited       bool    `json:"isUnlimited"`
	RequestsMade      int     `json:"requestsMade"`
	QuotaLimit        int     `json:"quotaLimit"`
	RemainingQuota    int     `json:"remainingQuota"`
	UsagePercentage   float64 `json:"usagePercentage"`
	IsExhausted       bool    `json:"isExhausted"`
	WarningThreshold  int     `json:"warningThreshold"`
	CriticalThreshold int     `json:"criticalThreshold"`
}
