package repositories

import (
	"context"
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
)

// HistoryFilter narrows a history listing. Nil fields are ignored.
type HistoryFilter struct {
	DateFrom     *time.Time
	DateTo       *time.Time
	ProviderCode *string
	EventType    *domain.EventType
	Limit        int
	NextToken    string
}

// HistoryAppender records audit events. The history log is append-only; no
// update or delete operations exist on purpose.
type HistoryAppender interface {
	AppendEntry(ctx context.Context, entry domain.HistoryEntry) error
}

// HistoryReader defines read operations over the audit trail.
type HistoryReader interface {
	// FindEntries returns a page of entries newest-first plus the token for
	// the next page ("" when exhausted).
	FindEntries(ctx context.Context, tenantID string, filter HistoryFilter) ([]domain.HistoryEntry, string, error)

	// FindLatestRate returns the most recent entry that carries a rate value,
	// used as the cached-rate fallback source.
	FindLatestRate(ctx context.Context, tenantID string) (*domain.HistoryEntry, error)
}

// HistoryRepositoryFacade combines all history repository interfaces.
type HistoryRepositoryFacade interface {
	HistoryAppender
	HistoryReader
}
