package dto

import (
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
)

// CreateProviderRequest registers a new exchange-rate provider for the tenant.
type CreateProviderRequest struct {
	Name              string `json:"name" binding:"required,max=100"`
	Code              string `json:"code" binding:"required,max=50"`
	APIURL            string `json:"apiUrl" binding:"required,url,max=255"`
	APIKey            string `json:"apiKey,omitempty"`
	RequiresAPIKey    bool   `json:"requiresApiKey"`
	IsUnlimited       bool   `json:"isUnlimited"`
	MonthlyQuota      int    `json:"monthlyQuota" binding:"min=0"`
	Priority          int    `json:"priority" binding:"min=0"`
	IsEnabled         *bool  `json:"isEnabled,omitempty"`
	WarningThreshold  int    `json:"warningThreshold" binding:"min=0"`
	CriticalThreshold int    `json:"criticalThreshold" binding:"min=0"`
}

// UpdateProviderRequest updates an existing provider. Nil fields keep their
// stored value.
type UpdateProviderRequest struct {
	Name              *string `json:"name,omitempty" binding:"omitempty,max=100"`
	APIURL            *string `json:"apiUrl,omitempty" binding:"omitempty,url,max=255"`
	APIKey            *string `json:"apiKey,omitempty"`
	RequiresAPIKey    *bool   `json:"requiresApiKey,omitempty"`
	IsUnlimited       *bool   `json:"isUnlimited,omitempty"`
	MonthlyQuota      *int    `json:"monthlyQuota,omitempty" binding:"omitempty,min=0"`
	Priority          *int    `json:"priority,omitempty" binding:"omitempty,min=0"`
	IsEnabled         *bool   `json:"isEnabled,omitempty"`
	WarningThreshold  *int    `json:"warningThreshold,omitempty" binding:"omitempty,min=0"`
	CriticalThreshold *int    `json:"criticalThreshold,omitempty" binding:"omitempty,min=0"`
}

// ProviderResponse is the API view of one provider configuration.
type ProviderResponse struct {
	ProviderID        string    `json:"providerID"`
	Name              string    `json:"name"`
	Code              string    `json:"code"`
	APIURL            string    `json:"apiUrl"`
	RequiresAPIKey    bool      `json:"requiresApiKey"`
	HasAPIKey         bool      `json:"hasApiKey"`
	IsUnlimited       bool      `json:"isUnlimited"`
	MonthlyQuota      int       `json:"monthlyQuota"`
	Priority          int       `json:"priority"`
	IsEnabled         bool      `json:"isEnabled"`
	WarningThreshold  int       `json:"warningThreshold"`
	CriticalThreshold int       `json:"criticalThreshold"`
	RemainingQuota    *int      `json:"remainingQuota,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToProviderResponse converts a domain provider to the API response shape.
// remaining is nil for unlimited providers.
func ToProviderResponse(p domain.Provider, remaining *int) ProviderResponse {
	return ProviderResponse{
		ProviderID:        p.ProviderID,
		Name:              p.Name,
		Code:              p.Code,
		APIURL:            p.APIURL,
		RequiresAPIKey:    p.RequiresAPIKey,
		HasAPIKey:         p.APIKeyRef != "",
		IsUnlimited:       p.IsUnlimited,
		MonthlyQuota:      p.MonthlyQuota,
		Priority:          p.Priority,
		IsEnabled:         p.IsEnabled,
		WarningThreshold:  p.WarningThreshold,
		CriticalThreshold: p.CriticalThreshold,
		RemainingQuota:    remaining,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
