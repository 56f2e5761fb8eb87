package ports

import (
	"context"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateFetcher is the external collaborator that retrieves a raw rate value
// from one configured provider. Implementations own transport concerns
// (timeouts, authentication, response decoding); the orchestrator treats any
// returned error as a per-provider failure and moves on.
type RateFetcher interface {
	Fetch(ctx context.Context, provider domain.Provider) (decimal.Decimal, error)
}
