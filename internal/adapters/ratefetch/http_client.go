package ratefetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/ratewise/rate_engine_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

const targetCurrency = "IDR"

// maxResponseBytes caps provider response bodies; rate payloads are tiny.
const maxResponseBytes = 1 << 20

// HTTPFetcher retrieves the USD->IDR rate from a provider's JSON API.
// Providers disagree on response shape, so decoding tries the common layouts
// in order until one yields the target currency.
type HTTPFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout.
func NewHTTPFetcher(timeout time.Duration, logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

var _ ports.RateFetcher = (*HTTPFetcher)(nil)

// Fetch performs one provider call and extracts the IDR rate.
func (f *HTTPFetcher) Fetch(ctx context.Context, provider domain.Provider) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, provider.APIURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build request for provider %s: %w", provider.Code, err)
	}
	req.Header.Set("Accept", "application/json")
	if provider.RequiresAPIKey && provider.APIKeyRef != "" {
		req.Header.Set("Authorization", "Bearer "+provider.APIKeyRef)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("provider %s request failed: %w", provider.Code, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return decimal.Zero, fmt.Errorf("provider %s response read failed: %w", provider.Code, err)
	}

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("provider %s returned status %d", provider.Code, resp.StatusCode)
	}

	rate, err := extractRate(body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("provider %s: %w", provider.Code, err)
	}

	f.logger.Debug("provider rate fetched",
		slog.String("provider", provider.Code),
		slog.String("rate", rate.String()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return rate, nil
}

// extractRate pulls the IDR value out of the known provider response layouts:
//
//	{"rates": {"IDR": 15500}}                      open exchange rates, fixer
//	{"conversion_rates": {"IDR": 15500}}           exchangerate-api
//	{"data": {"IDR": {"value": 15500}}}            currencyapi
func extractRate(body []byte) (decimal.Decimal, error) {
	var generic struct {
		Rates           map[string]decimal.Decimal `json:"rates"`
		ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
		Data            map[string]struct {
			Value decimal.Decimal `json:"value"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &generic); err != nil {
		return decimal.Zero, fmt.Errorf("unparseable response body: %w", err)
	}

	if rate, ok := generic.Rates[targetCurrency]; ok {
		return rate, nil
	}
	if rate, ok := generic.ConversionRates[targetCurrency]; ok {
		return rate, nil
	}
	if entry, ok := generic.Data[targetCurrency]; ok {
		return entry.Value, nil
	}
	return decimal.Zero, fmt.Errorf("response carries no %s rate", targetCurrency)
}
