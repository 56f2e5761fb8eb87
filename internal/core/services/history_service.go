package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ratewise/rate_engine_app/internal/apperrors"
	"github.com/ratewise/rate_engine_app/internal/core/domain"
	portsrepo "github.com/ratewise/rate_engine_app/internal/core/ports/repositories"
	"github.com/ratewise/rate_engine_app/internal/dto"
)

const (
	defaultHistoryPageSize = 50
	maxHistoryPageSize     = 500
)

// HistoryService exposes the append-only audit trail of rate events.
type HistoryService struct {
	historyRepo portsrepo.HistoryRepositoryFacade
	logger      *slog.Logger
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(historyRepo portsrepo.HistoryRepositoryFacade, logger *slog.Logger) *HistoryService {
	return &HistoryService{historyRepo: historyRepo, logger: logger}
}

// ListHistory returns a filtered page of history entries, newest first.
func (s *HistoryService) ListHistory(ctx context.Context, tenantID string, req dto.HistoryListRequest) (*dto.HistoryListResponse, error) {
	filter := portsrepo.HistoryFilter{
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Limit:     req.Limit,
		NextToken: req.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryPageSize
	}
	if filter.Limit > maxHistoryPageSize {
		filter.Limit = maxHistoryPageSize
	}

	if req.ProviderCode != nil && *req.ProviderCode != "" {
		filter.ProviderCode = req.ProviderCode
	}
	if req.EventType != nil && *req.EventType != "" {
		if !domain.ValidEventType(*req.EventType) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown event type %q", *req.EventType))
		}
		et := domain.EventType(*req.EventType)
		filter.EventType = &et
	}

	entries, nextToken, err := s.historyRepo.FindEntries(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	resp := dto.ToHistoryListResponse(entries, nextToken)
	return &resp, nil
}
