package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryEntry stores one append-only audit record of a rate event.
type HistoryEntry struct {
	EntryID      string            `json:"entryID"` // Primary Key (UUID)
	TenantID     string            `json:"tenantID"`
	Rate         *decimal.Decimal  `json:"rate"`
	ProviderCode *string           `json:"providerCode"`
	Source       string            `json:"source"`    // manual | api | cached
	EventType    string            `json:"eventType"` // rate_change | provider_switch | api_request | manual_update
	Metadata     map[string]string `json:"metadata"`  // Stored as jsonb
	CreatedAt    time.Time         `json:"createdAt"`
}
