package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ratewise/rate_engine_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SettingsRepo: newPgxSettingsRepository(dbPool),
		ProviderRepo: newPgxProviderRepository(dbPool),
		QuotaRepo:    newPgxQuotaRepository(dbPool),
		HistoryRepo:  newPgxHistoryRepository(dbPool),
	}
}
