package dto

import (
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// HistoryListRequest carries the query filters for the audit trail listing.
type HistoryListRequest struct {
	DateFrom     *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"date_to" time_format:"2006-01-02"`
	ProviderCode *string    `form:"provider_code"`
	EventType    *string    `form:"event_type"`
	Limit        int        `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	NextToken    string     `form:"next_token"`
}

// HistoryEntryResponse is the API view of one audit record.
type HistoryEntryResponse struct {
	EntryID      string            `json:"entryID"`
	Rate         *decimal.Decimal  `json:"rate,omitempty"`
	ProviderCode *string           `json:"providerCode,omitempty"`
	Source       domain.RateSource `json:"source"`
	EventType    domain.EventType  `json:"eventType"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// HistoryListResponse is one page of the audit trail, newest first.
type HistoryListResponse struct {
	Entries   []HistoryEntryResponse `json:"entries"`
	NextToken string                 `json:"nextToken,omitempty"`
}

// ToHistoryEntryResponse converts a domain history entry to the API shape.
func ToHistoryEntryResponse(e domain.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		EntryID:      e.EntryID,
		Rate:         e.Rate,
		ProviderCode: e.ProviderCode,
		Source:       e.Source,
		EventType:    e.EventType,
		Metadata:     e.Metadata,
		CreatedAt:    e.CreatedAt,
	}
}

// ToHistoryListResponse converts a page of entries plus its next-page token.
func ToHistoryListResponse(entries []domain.HistoryEntry, nextToken string) HistoryListResponse {
	out := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToHistoryEntryResponse(e)
	}
	return HistoryListResponse{Entries: out, NextToken: nextToken}
}
