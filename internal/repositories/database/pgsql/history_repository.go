package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	portsrepo "github.com/ratewise/rate_engine_app/internal/core/ports/repositories"
	"github.com/ratewise/rate_engine_app/internal/models"
	"github.com/ratewise/rate_engine_app/internal/utils/mapping"
	"github.com/ratewise/rate_engine_app/internal/utils/pagination"
)

type PgxHistoryRepository struct {
	BaseRepository
}

// newPgxHistoryRepository creates a new repository for the rate audit trail.
func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

// AppendEntry records one audit event. Entries are never updated or deleted.
func (r *PgxHistoryRepository) AppendEntry(ctx context.Context, entry domain.HistoryEntry) error {
	m := mapping.ToModelHistoryEntry(entry)

	var metadataJSON []byte
	if m.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(m.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal history metadata: %w", err)
		}
	}

	query := `
		INSERT INTO exchange_rate_history (entry_id, tenant_id, rate, provider_code, source, event_type, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.TenantID, m.Rate, m.ProviderCode, m.Source, m.EventType, metadataJSON, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry %s: %w", m.EntryID, err)
	}
	return nil
}

// FindEntries returns a filtered page of entries newest-first plus the token
// for the next page.
func (r *PgxHistoryRepository) FindEntries(ctx context.Context, tenantID string, filter portsrepo.HistoryFilter) ([]domain.HistoryEntry, string, error) {
	query := `
		SELECT entry_id, tenant_id, rate, provider_code, source, event_type, metadata, created_at
		FROM exchange_rate_history
		WHERE tenant_id = $1`
	args := []any{tenantID}

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND created_at < $` + strconv.Itoa(len(args))
	}
	if filter.ProviderCode != nil {
		args = append(args, *filter.ProviderCode)
		query += ` AND provider_code = $` + strconv.Itoa(len(args))
	}
	if filter.EventType != nil {
		args = append(args, string(*filter.EventType))
		query += ` AND event_type = $` + strconv.Itoa(len(args))
	}
	if filter.NextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(filter.NextToken)
		if err != nil {
			return nil, "", apperrors.NewValidationError(err.Error())
		}
		args = append(args, cursorTime, cursorID)
		query += fmt.Sprintf(` AND (created_at, entry_id) < ($%d, $%d)`, len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, filter.Limit+1)
	query += ` ORDER BY created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list history for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0, filter.Limit)
	for rows.Next() {
		m, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, mapping.ToDomainHistoryEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed reading history rows: %w", err)
	}

	nextToken := ""
	if len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
		last := entries[len(entries)-1]
		nextToken = pagination.EncodeToken(last.CreatedAt, last.EntryID)
	}
	return entries, nextToken, nil
}

// FindLatestRate returns the most recent entry that carries a rate value.
func (r *PgxHistoryRepository) FindLatestRate(ctx context.Context, tenantID string) (*domain.HistoryEntry, error) {
	query := `
		SELECT entry_id, tenant_id, rate, provider_code, source, event_type, metadata, created_at
		FROM exchange_rate_history
		WHERE tenant_id = $1 AND rate IS NOT NULL
		ORDER BY created_at DESC, entry_id DESC
		LIMIT 1;
	`
	m, err := scanHistoryEntry(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate for tenant %s: %w", tenantID, err)
	}
	d := mapping.ToDomainHistoryEntry(*m)
	return &d, nil
}

func scanHistoryEntry(row pgx.Row) (*models.HistoryEntry, error) {
	var m models.HistoryEntry
	var metadataJSON []byte
	err := row.Scan(
		&m.EntryID, &m.TenantID, &m.Rate, &m.ProviderCode, &m.Source, &m.EventType, &metadataJSON, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &m.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history metadata: %w", err)
		}
	}
	return &m, nil
}
