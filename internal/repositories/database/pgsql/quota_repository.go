package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	portsrepo "github.com/ratewise/rate_engine_app/internal/core/ports/repositories"
	"github.com/ratewise/rate_engine_app/internal/models"
	"github.com/ratewise/rate_engine_app/internal/utils/mapping"
)

type PgxQuotaRepository struct {
	BaseRepository
}

// newPgxQuotaRepository creates a new repository for monthly quota trackers.
func newPgxQuotaRepository(pool *pgxpool.Pool) portsrepo.QuotaRepositoryFacade {
	return &PgxQuotaRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.QuotaRepositoryFacade = (*PgxQuotaRepository)(nil)

// FindTracker retrieves the latest tracker for a (tenant, provider) pair.
func (r *PgxQuotaRepository) FindTracker(ctx context.Context, tenantID, providerID string) (*domain.QuotaTracker, error) {
	query := `
		SELECT tenant_id, provider_id, year, month, requests_made, quota_limit, last_reset_at
		FROM quota_tracking
		WHERE tenant_id = $1 AND provider_id = $2
		ORDER BY year DESC, month DESC
		LIMIT 1;
	`
	var m models.QuotaTracking
	err := r.Pool.QueryRow(ctx, query, tenantID, providerID).Scan(
		&m.TenantID, &m.ProviderID, &m.Year, &m.Month, &m.RequestsMade, &m.QuotaLimit, &m.LastResetAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find quota tracker for provider %s: %w", providerID, err)
	}

	tracker := mapping.ToDomainQuotaTracker(m)
	return &tracker, nil
}

// ListTrackers returns the latest tracker per provider for the tenant.
func (r *PgxQuotaRepository) ListTrackers(ctx context.Context, tenantID string) (map[string]domain.QuotaTracker, error) {
	query := `
		SELECT DISTINCT ON (provider_id)
			tenant_id, provider_id, year, month, requests_made, quota_limit, last_reset_at
		FROM quota_tracking
		WHERE tenant_id = $1
		ORDER BY provider_id, year DESC, month DESC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quota trackers for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	trackers := make(map[string]domain.QuotaTracker)
	for rows.Next() {
		var m models.QuotaTracking
		if err := rows.Scan(&m.TenantID, &m.ProviderID, &m.Year, &m.Month, &m.RequestsMade, &m.QuotaLimit, &m.LastResetAt); err != nil {
			return nil, fmt.Errorf("failed to scan quota tracker row: %w", err)
		}
		trackers[m.ProviderID] = mapping.ToDomainQuotaTracker(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading quota tracker rows: %w", err)
	}
	return trackers, nil
}

// SaveTracker upserts the tracker state under its own period key.
func (r *PgxQuotaRepository) SaveTracker(ctx context.Context, tenantID, providerID string, tracker domain.QuotaTracker) error {
	m := mapping.ToModelQuotaTracking(tenantID, providerID, tracker)
	query := `
		INSERT INTO quota_tracking (tenant_id, provider_id, year, month, requests_made, quota_limit, last_reset_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, provider_id, year, month) DO UPDATE SET
			requests_made = EXCLUDED.requests_made,
			quota_limit = EXCLUDED.quota_limit,
			last_reset_at = EXCLUDED.last_reset_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TenantID, m.ProviderID, m.Year, m.Month, m.RequestsMade, m.QuotaLimit, m.LastResetAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quota tracker for provider %s: %w", providerID, err)
	}
	return nil
}

// IncrementUsage atomically adds n requests to the monthly counter. The single
// guarded upsert keeps concurrent acquisition cycles from losing counts.
func (r *PgxQuotaRepository) IncrementUsage(ctx context.Context, tenantID, providerID string, year int, month time.Month, quotaLimit, n int, now time.Time) (domain.QuotaTracker, error) {
	query := `
		INSERT INTO quota_tracking (tenant_id, provider_id, year, month, requests_made, quota_limit, last_reset_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, provider_id, year, month) DO UPDATE SET
			requests_made = quota_tracking.requests_made + $5,
			quota_limit = EXCLUDED.quota_limit
		RETURNING tenant_id, provider_id, year, month, requests_made, quota_limit, last_reset_at;
	`
	var m models.QuotaTracking
	err := r.Pool.QueryRow(ctx, query, tenantID, providerID, year, int(month), n, quotaLimit, now).Scan(
		&m.TenantID, &m.ProviderID, &m.Year, &m.Month, &m.RequestsMade, &m.QuotaLimit, &m.LastResetAt,
	)
	if err != nil {
		return domain.QuotaTracker{}, fmt.Errorf("failed to increment quota for provider %s: %w", providerID, err)
	}
	return mapping.ToDomainQuotaTracker(m), nil
}
