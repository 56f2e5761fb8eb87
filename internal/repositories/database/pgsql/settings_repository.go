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
	"github.com/shopspring/decimal"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for tenant rate settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// FindSettings retrieves the settings row for a tenant.
func (r *PgxSettingsRepository) FindSettings(ctx context.Context, tenantID string) (*domain.RateSettings, error) {
	query := `
		SELECT tenant_id, mode, manual_rate, current_rate, current_rate_source,
			current_rate_at, active_provider_id, auto_update_enabled, auto_update_time, last_updated_at
		FROM exchange_rate_settings
		WHERE tenant_id = $1;
	`
	var modelSettings models.RateSettings
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&modelSettings.TenantID,
		&modelSettings.Mode,
		&modelSettings.ManualRate,
		&modelSettings.CurrentRate,
		&modelSettings.CurrentRateSource,
		&modelSettings.CurrentRateAt,
		&modelSettings.ActiveProviderID,
		&modelSettings.AutoUpdateEnabled,
		&modelSettings.AutoUpdateTime,
		&modelSettings.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate settings for tenant %s: %w", tenantID, err)
	}

	domainSettings := mapping.ToDomainRateSettings(modelSettings)
	return &domainSettings, nil
}

// SaveSettings inserts or fully updates a tenant's settings.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.RateSettings) error {
	modelSettings := mapping.ToModelRateSettings(settings)

	query := `
		INSERT INTO exchange_rate_settings (
			tenant_id, mode, manual_rate, current_rate, current_rate_source,
			current_rate_at, active_provider_id, auto_update_enabled, auto_update_time, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tenant_id) DO UPDATE SET
			mode = EXCLUDED.mode,
			manual_rate = EXCLUDED.manual_rate,
			current_rate = EXCLUDED.current_rate,
			current_rate_source = EXCLUDED.current_rate_source,
			current_rate_at = EXCLUDED.current_rate_at,
			active_provider_id = EXCLUDED.active_provider_id,
			auto_update_enabled = EXCLUDED.auto_update_enabled,
			auto_update_time = EXCLUDED.auto_update_time,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSettings.TenantID,
		modelSettings.Mode,
		modelSettings.ManualRate,
		modelSettings.CurrentRate,
		modelSettings.CurrentRateSource,
		modelSettings.CurrentRateAt,
		modelSettings.ActiveProviderID,
		modelSettings.AutoUpdateEnabled,
		modelSettings.AutoUpdateTime,
		modelSettings.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate settings for tenant %s: %w", modelSettings.TenantID, err)
	}
	return nil
}

// UpdateCurrentRate records the latest resolved rate for the tenant.
func (r *PgxSettingsRepository) UpdateCurrentRate(ctx context.Context, tenantID string, rate decimal.Decimal, source domain.RateSource, resolvedAt time.Time) error {
	query := `
		UPDATE exchange_rate_settings
		SET current_rate = $1, current_rate_source = $2, current_rate_at = $3, last_updated_at = $3
		WHERE tenant_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, rate, string(source), resolvedAt, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update current rate for tenant %s: %w", tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateActiveProvider switches the tenant's active provider reference.
func (r *PgxSettingsRepository) UpdateActiveProvider(ctx context.Context, tenantID, providerID string, updatedAt time.Time) error {
	query := `
		UPDATE exchange_rate_settings
		SET active_provider_id = $1, last_updated_at = $2
		WHERE tenant_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, providerID, updatedAt, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update active provider for tenant %s: %w", tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
