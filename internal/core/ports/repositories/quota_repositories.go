package repositories

import (
	"context"
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
)

// QuotaReader defines read operations for monthly quota trackers. Rows are
// keyed by (tenant, provider, year, month); readers surface the most recent
// period so callers can decide whether a calendar reset is due.
type QuotaReader interface {
	// FindTracker retrieves the latest tracker for a (tenant, provider) pair,
	// or ErrNotFound when no usage has ever been recorded.
	FindTracker(ctx context.Context, tenantID, providerID string) (*domain.QuotaTracker, error)

	// ListTrackers returns the latest tracker for each of the tenant's
	// providers, keyed by provider ID. Providers without a row are absent.
	ListTrackers(ctx context.Context, tenantID string) (map[string]domain.QuotaTracker, error)
}

// QuotaWriter defines write operations for monthly quota trackers.
type QuotaWriter interface {
	// SaveTracker upserts the tracker state under its own period key. Used
	// for calendar resets; routine accounting goes through IncrementUsage.
	SaveTracker(ctx context.Context, tenantID, providerID string, tracker domain.QuotaTracker) error

	// IncrementUsage atomically adds n requests to the (tenant, provider,
	// year, month) counter, creating the row at now when absent, and returns
	// the resulting tracker. The increment must be a single guarded update so
	// concurrent acquisition paths cannot lose counts.
	IncrementUsage(ctx context.Context, tenantID, providerID string, year int, month time.Month, quotaLimit, n int, now time.Time) (domain.QuotaTracker, error)
}

// QuotaRepositoryFacade combines all quota repository interfaces.
type QuotaRepositoryFacade interface {
	QuotaReader
	QuotaWriter
}
