package ratefetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ratewise/rate_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher() *HTTPFetcher {
	return NewHTTPFetcher(2*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetch_ResponseShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"rates map", `{"base":"USD","rates":{"EUR":0.92,"IDR":15500.25}}`, "15500.25"},
		{"conversion_rates map", `{"result":"success","conversion_rates":{"IDR":15210}}`, "15210"},
		{"currencyapi data map", `{"data":{"IDR":{"code":"IDR","value":15432.5}}}`, "15432.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			rate, err := testFetcher().Fetch(context.Background(), domain.Provider{
				Code:   "testprov",
				APIURL: srv.URL,
			})

			require.NoError(t, err)
			want, _ := decimal.NewFromString(tc.want)
			assert.True(t, rate.Equal(want), "got %s", rate)
		})
	}
}

func TestFetch_SendsAPIKeyHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"rates":{"IDR":15000}}`))
	}))
	defer srv.Close()

	_, err := testFetcher().Fetch(context.Background(), domain.Provider{
		Code:           "testprov",
		APIURL:         srv.URL,
		RequiresAPIKey: true,
		APIKeyRef:      "secret-key",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", gotAuth)
}

func TestFetch_Errors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := testFetcher().Fetch(context.Background(), domain.Provider{Code: "testprov", APIURL: srv.URL})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("missing target currency", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rates":{"EUR":0.92}}`))
		}))
		defer srv.Close()

		_, err := testFetcher().Fetch(context.Background(), domain.Provider{Code: "testprov", APIURL: srv.URL})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no IDR rate")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>rate limit exceeded</html>`))
		}))
		defer srv.Close()

		_, err := testFetcher().Fetch(context.Background(), domain.Provider{Code: "testprov", APIURL: srv.URL})
		require.Error(t, err)
	})

	t.Run("context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"rates":{"IDR":15000}}`))
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := testFetcher().Fetch(ctx, domain.Provider{Code: "testprov", APIURL: srv.URL})
		require.Error(t, err)
	})
}
