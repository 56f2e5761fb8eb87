package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	portsrepo "github.com/ratewise/rate_engine_app/internal/core/ports/repositories"
	"github.com/ratewise/rate_engine_app/internal/models"
	"github.com/ratewise/rate_engine_app/internal/utils/mapping"
)

const providerColumns = `provider_id, tenant_id, code, name, api_url, requires_api_key, api_key_ref,
	is_unlimited, monthly_quota, priority, is_enabled, warning_threshold, critical_threshold,
	created_at, updated_at`

type PgxProviderRepository struct {
	BaseRepository
}

// newPgxProviderRepository creates a new repository for provider configurations.
func newPgxProviderRepository(pool *pgxpool.Pool) portsrepo.ProviderRepositoryFacade {
	return &PgxProviderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProviderRepositoryFacade = (*PgxProviderRepository)(nil)

func scanProvider(row pgx.Row) (*models.Provider, error) {
	var m models.Provider
	err := row.Scan(
		&m.ProviderID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.APIURL,
		&m.RequiresAPIKey,
		&m.APIKeyRef,
		&m.IsUnlimited,
		&m.MonthlyQuota,
		&m.Priority,
		&m.IsEnabled,
		&m.WarningThreshold,
		&m.CriticalThreshold,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindProviderByID retrieves one provider scoped to the tenant.
func (r *PgxProviderRepository) FindProviderByID(ctx context.Context, tenantID, providerID string) (*domain.Provider, error) {
	query := fmt.Sprintf(`SELECT %s FROM exchange_rate_providers WHERE tenant_id = $1 AND provider_id = $2;`, providerColumns)
	m, err := scanProvider(r.Pool.QueryRow(ctx, query, tenantID, providerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find provider %s: %w", providerID, err)
	}
	d := mapping.ToDomainProvider(*m)
	return &d, nil
}

// FindProviderByName retrieves a provider by its tenant-unique name.
func (r *PgxProviderRepository) FindProviderByName(ctx context.Context, tenantID, name string) (*domain.Provider, error) {
	query := fmt.Sprintf(`SELECT %s FROM exchange_rate_providers WHERE tenant_id = $1 AND name = $2;`, providerColumns)
	m, err := scanProvider(r.Pool.QueryRow(ctx, query, tenantID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find provider named %q: %w", name, err)
	}
	d := mapping.ToDomainProvider(*m)
	return &d, nil
}

// ListProviders returns all of the tenant's providers ordered by priority,
// ties broken by creation time.
func (r *PgxProviderRepository) ListProviders(ctx context.Context, tenantID string) ([]domain.Provider, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM exchange_rate_providers
		WHERE tenant_id = $1
		ORDER BY priority ASC, created_at ASC;`, providerColumns)
	return r.listProviders(ctx, query, tenantID)
}

// ListEnabledProviders returns only enabled providers in the same order.
func (r *PgxProviderRepository) ListEnabledProviders(ctx context.Context, tenantID string) ([]domain.Provider, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM exchange_rate_providers
		WHERE tenant_id = $1 AND is_enabled = TRUE
		ORDER BY priority ASC, created_at ASC;`, providerColumns)
	return r.listProviders(ctx, query, tenantID)
}

func (r *PgxProviderRepository) listProviders(ctx context.Context, query, tenantID string) ([]domain.Provider, error) {
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	providers := make([]domain.Provider, 0)
	for rows.Next() {
		m, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider row: %w", err)
		}
		providers = append(providers, mapping.ToDomainProvider(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading provider rows: %w", err)
	}
	return providers, nil
}

// SaveProvider persists a new provider configuration.
func (r *PgxProviderRepository) SaveProvider(ctx context.Context, provider domain.Provider) error {
	m := mapping.ToModelProvider(provider)
	query := `
		INSERT INTO exchange_rate_providers (
			provider_id, tenant_id, code, name, api_url, requires_api_key, api_key_ref,
			is_unlimited, monthly_quota, priority, is_enabled, warning_threshold, critical_threshold,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProviderID, m.TenantID, m.Code, m.Name, m.APIURL, m.RequiresAPIKey, m.APIKeyRef,
		m.IsUnlimited, m.MonthlyQuota, m.Priority, m.IsEnabled, m.WarningThreshold, m.CriticalThreshold,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError(fmt.Sprintf("provider named %q already exists", m.Name))
		}
		return fmt.Errorf("failed to save provider %s: %w", m.ProviderID, err)
	}
	return nil
}

// UpdateProvider updates an existing provider configuration.
func (r *PgxProviderRepository) UpdateProvider(ctx context.Context, provider domain.Provider) error {
	m := mapping.ToModelProvider(provider)
	query := `
		UPDATE exchange_rate_providers
		SET code = $1, name = $2, api_url = $3, requires_api_key = $4, api_key_ref = $5,
			is_unlimited = $6, monthly_quota = $7, priority = $8, is_enabled = $9,
			warning_threshold = $10, critical_threshold = $11, updated_at = $12
		WHERE tenant_id = $13 AND provider_id = $14;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Code, m.Name, m.APIURL, m.RequiresAPIKey, m.APIKeyRef,
		m.IsUnlimited, m.MonthlyQuota, m.Priority, m.IsEnabled,
		m.WarningThreshold, m.CriticalThreshold, m.UpdatedAt,
		m.TenantID, m.ProviderID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError(fmt.Sprintf("provider named %q already exists", m.Name))
		}
		return fmt.Errorf("failed to update provider %s: %w", m.ProviderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProvider removes a provider. Callers must ensure it is not the
// tenant's active provider first.
func (r *PgxProviderRepository) DeleteProvider(ctx context.Context, tenantID, providerID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM exchange_rate_providers WHERE tenant_id = $1 AND provider_id = $2;`,
		tenantID, providerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete provider %s: %w", providerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
