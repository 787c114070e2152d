package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"loan-schedule/internal/config"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/domain/schedule"
	"loan-schedule/internal/infrastructure/memory"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
			Auth:           config.AuthConfig{JWTSecret: "router-secret", TokenTTL: time.Hour},
		},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	minTerm, maxTerm := 1, 12
	repo, err := memory.NewProductRepository([]product.LoanProduct{{
		Key:               "emergency",
		Name:              "Emergency Loan",
		InterestMethod:    product.MethodEMI,
		MonthlyRate:       mustDecimal("0.01"),
		DefaultTermMonths: 12,
		MinTermMonths:     &minTerm,
		MaxTermMonths:     &maxTerm,
		RepaymentPeriod:   product.PeriodMonthly,
		FirstDueRule:      "same_day_next_month",
		HolidayRule:       "exact",
		RoundingUnit:      mustDecimal("0.01"),
		Active:            true,
	}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return SetupRouter(ctx,
		product.NewProductService(repo, testLogger),
		schedule.NewScheduleService(repo, nil, nil, testLogger),
		cfg, testLogger)
}

func do(t *testing.T, h http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, testConfig()), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, testConfig())
	do(t, router, http.MethodGet, "/health", "", nil)

	rec := do(t, router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "loan_schedule_http_requests_total")
}

func TestRouterSwaggerRedirect(t *testing.T) {
	rec := do(t, newTestRouter(t, testConfig()), http.MethodGet, "/swagger", "", nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/swagger/index.html", rec.Header().Get("Location"))
}

func TestRouterLoanRoutes(t *testing.T) {
	router := newTestRouter(t, testConfig())

	t.Run("lists products", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/loan/products", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Items []map[string]interface{} `json:"items"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body.Items, 1)
		assert.Equal(t, "emergency", body.Items[0]["ProductKey"])
	})

	t.Run("gets product", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/loan/products/emergency", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = do(t, router, http.MethodGet, "/loan/products/ghost", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("calculates schedule", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/loan/calc",
			`{"product_key":"emergency","principal":120000,"start_date":"2025-01-15"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		summary := body["summary"].(map[string]interface{})
		assert.Equal(t, 10661.85, summary["EMI"])
		assert.Len(t, body["schedule"], 12)
	})

	t.Run("rejects term above maximum", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/loan/calc",
			`{"product_key":"emergency","principal":1000,"term_months":24}`, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "term_above_maximum")
	})

	t.Run("exports CSV", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/loan/calc?format=csv",
			`{"product_key":"emergency","principal":120000,"start_date":"2025-01-15"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "Period,Date,Principal,Interest,Total,Balance\n"))
	})
}

func TestRouterAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Auth.Enabled = true
	router := newTestRouter(t, cfg)

	rec := do(t, router, http.MethodGet, "/loan/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodPost, "/auth/token", `{"username":"teller"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var token struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&token))

	parsed, err := jwt.Parse(strings.TrimPrefix(token.Token, "Bearer "), func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Server.Auth.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	rec = do(t, router, http.MethodGet, "/loan/products", "", http.Header{"Authorization": {token.Token}})
	assert.Equal(t, http.StatusOK, rec.Code)
}
