package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType classifies an audit history entry.
type EventType string

const (
	EventRateChange     EventType = "rate_change"
	EventProviderSwitch EventType = "provider_switch"
	EventAPIRequest     EventType = "api_request"
	EventManualUpdate   EventType = "manual_update"
)

// ValidEventType reports whether s names a known event type.
func ValidEventType(s string) bool {
	switch EventType(s) {
	case EventRateChange, EventProviderSwitch, EventAPIRequest, EventManualUpdate:
		return true
	}
	return false
}

// HistoryEntry is one immutable audit record of a rate change, provider switch
// or fetch attempt. Entries are append-only; retention is an external concern.
type HistoryEntry struct {
	EntryID      string            `json:"entryID"` // Primary Key (UUID)
	TenantID     string            `json:"tenantID"`
	Rate         *decimal.Decimal  `json:"rate,omitempty"`
	ProviderCode *string           `json:"providerCode,omitempty"`
	Source       RateSource        `json:"source"`
	EventType    EventType         `json:"eventType"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}
