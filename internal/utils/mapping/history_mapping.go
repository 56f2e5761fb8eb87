package mapping

import (
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/models"
)

// ToModelHistoryEntry converts a domain HistoryEntry to a model HistoryEntry
func ToModelHistoryEntry(d domain.HistoryEntry) models.HistoryEntry {
	return models.HistoryEntry{
		EntryID:      d.EntryID,
		TenantID:     d.TenantID,
		Rate:         d.Rate,
		ProviderCode: d.ProviderCode,
		Source:       string(d.Source),
		EventType:    string(d.EventType),
		Metadata:     d.Metadata,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainHistoryEntry converts a model HistoryEntry to a domain HistoryEntry
func ToDomainHistoryEntry(m models.HistoryEntry) domain.HistoryEntry {
	return domain.HistoryEntry{
		EntryID:      m.EntryID,
		TenantID:     m.TenantID,
		Rate:         m.Rate,
		ProviderCode: m.ProviderCode,
		Source:       domain.RateSource(m.Source),
		EventType:    domain.EventType(m.EventType),
		Metadata:     m.Metadata,
		CreatedAt:    m.CreatedAt,
	}
}
