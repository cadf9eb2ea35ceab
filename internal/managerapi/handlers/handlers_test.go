package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnabil1974/storal.fr-sub003/internal/auth"
	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/catalog/memory"
	"github.com/jnabil1974/storal.fr-sub003/internal/managerapi/handlers/dto"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
	"github.com/jnabil1974/storal.fr-sub003/internal/ratelimit"
	"github.com/jnabil1974/storal.fr-sub003/internal/zone"
	"github.com/jnabil1974/storal.fr-sub003/pkg/errormapper"
)

const testAdminKey = "admin-key"

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWith(t, nil)
}

// newTestRouterWith builds the test router; customize may adjust the dependencies.
func newTestRouterWith(t *testing.T, customize func(*Dependencies)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := memory.LoadFile("../../catalog/memory/testdata/catalog.yaml")
	require.NoError(t, err)
	zones := zone.NewDefaultChecker()
	calc, err := pricing.NewCalculator(store, pricing.DefaultSettings(), zones)
	require.NoError(t, err)
	calc.WithClock(func() time.Time { return testNow })

	hash, err := auth.HashAPIKey(testAdminKey)
	require.NoError(t, err)

	router, err := NewRouter(nil)
	require.NoError(t, err)
	router.GET("/health", NewHealthHandler(
		HealthCheck{Name: "catalog", Critical: true, Check: func(context.Context) error { return nil }},
	).Health)
	deps := Dependencies{
		Calculator:      calc,
		Catalog:         store,
		Zones:           zones,
		AdminAPIKeyHash: hash,
	}
	if customize != nil {
		customize(&deps)
	}
	SetupRoutes(router.Group("/api/v1"), deps)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set(auth.APIKeyHeader, testAdminKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCreateQuote(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/quotes", dto.CreateQuoteRequest{
		ProductID:  "kissimy",
		Width:      3200,
		Projection: 1500,
	}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	q := decode[dto.QuoteResponse](t, w)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "2274.00", q.BasePriceHT)
	assert.Equal(t, "2274.00", q.TotalHT)
	assert.Equal(t, "454.80", q.VAT)
	assert.Equal(t, "2728.80", q.TotalTTC)
	assert.Equal(t, pricing.SourceProductKey, q.CoefficientSource)
	assert.Empty(t, q.SurchargesHT)
	assert.NotContains(t, w.Body.String(), "purchase_price")
}

func TestCreateQuoteWithInstallation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/quotes", dto.CreateQuoteRequest{
		ProductID:                "kissimy",
		Width:                    3200,
		Projection:               1500,
		PostalCode:               "75011",
		ProfessionalInstallation: true,
	}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	q := decode[dto.QuoteResponse](t, w)
	assert.Equal(t, "0.1", q.VATRate)
	require.Len(t, q.SurchargesHT, 1)
	assert.Equal(t, pricing.LineInstallation, q.SurchargesHT[0].ID)
	assert.Equal(t, "500.00", q.SurchargesHT[0].PriceHT)
	assert.Equal(t, "2774.00", q.TotalHT)
	assert.Equal(t, "3051.40", q.TotalTTC)
}

func TestCreateQuoteErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		req    dto.CreateQuoteRequest
		status int
		code   string
	}{
		{"width above grid", dto.CreateQuoteRequest{ProductID: "kissimy", Width: 5000, Projection: 1500}, http.StatusUnprocessableEntity, errormapper.ErrorCodeInvalidDimension},
		{"width below minimum", dto.CreateQuoteRequest{ProductID: "kissimy", Width: 2000, Projection: 2000}, http.StatusUnprocessableEntity, errormapper.ErrorCodeInvalidDimension},
		{"zero width", dto.CreateQuoteRequest{ProductID: "kissimy", Projection: 1500}, http.StatusUnprocessableEntity, errormapper.ErrorCodeInvalidDimension},
		{"unknown projection", dto.CreateQuoteRequest{ProductID: "kissimy", Width: 3000, Projection: 1750}, http.StatusUnprocessableEntity, errormapper.ErrorCodeUnknownAxisValue},
		{"unknown product", dto.CreateQuoteRequest{ProductID: "pergola", Width: 3000, Projection: 1500}, http.StatusNotFound, errormapper.ErrorCodeProductNotFound},
		{"unknown option", dto.CreateQuoteRequest{ProductID: "kissimy", Width: 3000, Projection: 1500, OptionIDs: []string{"heater"}}, http.StatusUnprocessableEntity, errormapper.ErrorCodeUnknownOption},
		{"uncovered installation", dto.CreateQuoteRequest{ProductID: "kissimy", Width: 3000, Projection: 1500, PostalCode: "13001", ProfessionalInstallation: true}, http.StatusUnprocessableEntity, errormapper.ErrorCodeZoneNotCovered},
		{"missing product id", dto.CreateQuoteRequest{Width: 3000, Projection: 1500}, http.StatusBadRequest, errormapper.ErrorCodeValidationFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/v1/quotes", tt.req, false)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			resp := decode[dto.ErrorResponse](t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestGetLimits(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/limits?projection=2000", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	limits := decode[dto.WidthLimitsResponse](t, w)
	assert.Equal(t, 2390, limits.MinWidth)
	assert.Equal(t, 12000, limits.MaxWidth)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/limits", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[dto.ProductLimitsResponse](t, w)
	require.Len(t, all.Limits, 2)
	assert.Equal(t, 1500, all.Limits[0].Projection)
	assert.Equal(t, 3570, all.Limits[0].MaxWidth)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/limits?projection=abc", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/limits?projection=1750", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCheckZone(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/zones/check?postal_code=45000&width=6500", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[dto.ZoneCheckResponse](t, w)
	assert.True(t, resp.Eligible)
	assert.Equal(t, "45", resp.Department)
	require.NotNil(t, resp.Zone)
	assert.Equal(t, "Loiret", resp.Zone.Name)
	require.NotNil(t, resp.Installation)
	assert.Equal(t, "600.00", resp.Installation.LabourHT)
	assert.Equal(t, "700.00", resp.Installation.TotalHT)

	w = doJSON(t, router, http.MethodGet, "/api/v1/zones/check?postal_code=13001", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[dto.ZoneCheckResponse](t, w)
	assert.False(t, resp.Eligible)
	assert.Nil(t, resp.Zone)
	assert.NotEmpty(t, resp.Message)

	w = doJSON(t, router, http.MethodGet, "/api/v1/zones/check?postal_code=7501", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dto.ZoneCheckResponse](t, w).Eligible)

	w = doJSON(t, router, http.MethodGet, "/api/v1/zones/check", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPricingRuleLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/pricing-rules", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	validFrom := testNow.Add(-time.Hour)
	w = doJSON(t, router, http.MethodPost, "/api/v1/admin/pricing-rules", map[string]any{
		"product_id":  "kissimy",
		"coefficient": "1.5",
		"reason":      "Soldes",
		"valid_from":  validFrom,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.PricingRuleResponse](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "1.5", created.Coefficient)
	assert.True(t, created.IsActive)

	// The new rule drives the quote.
	w = doJSON(t, router, http.MethodPost, "/api/v1/quotes", dto.CreateQuoteRequest{ProductID: "kissimy", Width: 3200, Projection: 1500}, false)
	require.Equal(t, http.StatusOK, w.Code)
	q := decode[dto.QuoteResponse](t, w)
	assert.Equal(t, pricing.SourceRule, q.CoefficientSource)
	assert.Equal(t, "1705.50", q.TotalHT)

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/pricing-rules?product_id=kissimy&limit=1", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Data       []dto.PricingRuleResponse `json:"data"`
		Pagination dto.PaginationResponse    `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 2, page.Pagination.Total)
	assert.EqualValues(t, 1, page.Pagination.Limit)
	require.Len(t, page.Data, 1)

	w = doJSON(t, router, http.MethodPost, "/api/v1/admin/pricing-rules/"+created.ID+"/deactivate", nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "inactive", decode[dto.PricingRuleResponse](t, w).Status)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/admin/pricing-rules/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/pricing-rules/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errormapper.ErrorCodeRuleNotFound, decode[dto.ErrorResponse](t, w).Code)
}

func TestCreatePricingRuleValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/admin/pricing-rules", map[string]any{
		"product_id":  "kissimy",
		"coefficient": "0",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/admin/pricing-rules", map[string]any{
		"product_id":  "pergola",
		"coefficient": "1.2",
	}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", NewHealthHandler(
		HealthCheck{Name: "catalog", Critical: true, Check: func(context.Context) error { return nil }},
		HealthCheck{Name: "cache", Check: func(context.Context) error { return errors.New("redis down") }},
	).Health)

	w := doJSON(t, router, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.HealthResponse](t, w)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "down", resp.Checks["cache"])

	router = gin.New()
	router.GET("/health", NewHealthHandler(
		HealthCheck{Name: "catalog", Critical: true, Check: func(context.Context) error { return errors.New("db down") }},
	).Health)
	w = doJSON(t, router, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateQuoteRateLimited(t *testing.T) {
	router := newTestRouterWith(t, func(d *Dependencies) {
		d.QuoteLimiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerSecond: 0.001, BurstSize: 1})
	})
	req := dto.CreateQuoteRequest{ProductID: "kissimy", Width: 3200, Projection: 1500}

	w := doJSON(t, router, http.MethodPost, "/api/v1/quotes", req, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/quotes", req, false)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, errormapper.ErrorCodeRateLimited, body.Code)
	assert.True(t, body.Retryable)

	// Limits are not throttled.
	w = doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/limits", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateQuoteRateLimitIgnoresForwardedFor(t *testing.T) {
	router := newTestRouterWith(t, func(d *Dependencies) {
		d.QuoteLimiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerSecond: 0.001, BurstSize: 1})
	})
	body, err := json.Marshal(dto.CreateQuoteRequest{ProductID: "kissimy", Width: 3200, Projection: 1500})
	require.NoError(t, err)

	accepted := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		switch w.Code {
		case http.StatusOK:
			accepted++
		case http.StatusTooManyRequests:
		default:
			t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
		}
	}
	assert.Equal(t, 1, accepted, "forwarding headers from an untrusted peer must not open new buckets")
}

func TestNewRouterClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clientIP := func(t *testing.T, router *gin.Engine, forwardedFor string) string {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.RemoteAddr = "192.0.2.1:40000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}
	echo := func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) }

	untrusted, err := NewRouter(nil)
	require.NoError(t, err)
	untrusted.GET("/ip", echo)
	assert.Equal(t, "192.0.2.1", clientIP(t, untrusted, "203.0.113.7"))

	trusted, err := NewRouter([]string{"192.0.2.0/24"})
	require.NoError(t, err)
	trusted.GET("/ip", echo)
	assert.Equal(t, "203.0.113.7", clientIP(t, trusted, "203.0.113.7"))

	_, err = NewRouter([]string{"not-an-ip"})
	assert.Error(t, err)
}

type failingRuleStore struct {
	catalog.Store
	createErr error
}

func (s failingRuleStore) CreatePricingRule(context.Context, pricing.PricingRule) (pricing.PricingRule, error) {
	return pricing.PricingRule{}, s.createErr
}

func TestCreatePricingRuleStoreErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"duplicate id", fmt.Errorf("%w: id r1", catalog.ErrDuplicateRule), http.StatusConflict, errormapper.ErrorCodeDuplicateRule},
		{"malformed data", fmt.Errorf("%w: bad row", pricing.ErrInvalidCatalogData), http.StatusInternalServerError, errormapper.ErrorCodeInvalidCatalogData},
		{"unknown product", fmt.Errorf("%w: ghost", pricing.ErrProductNotFound), http.StatusNotFound, errormapper.ErrorCodeProductNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouterWith(t, func(d *Dependencies) {
				d.Catalog = failingRuleStore{Store: d.Catalog, createErr: tt.err}
			})
			w := doJSON(t, router, http.MethodPost, "/api/v1/admin/pricing-rules", map[string]any{
				"product_id":  "kissimy",
				"coefficient": "1.7",
			}, true)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[dto.ErrorResponse](t, w).Code)
		})
	}
}

func offeredOptionIDs(opts []dto.OfferedOptionResponse) []string {
	ids := make([]string, len(opts))
	for i, o := range opts {
		ids[i] = o.ID
	}
	return ids
}

func TestListOptions(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/options", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[dto.OptionListResponse](t, w)
	assert.Equal(t, "2", resp.Coefficient)
	require.Equal(t, []string{"led-arms", "remote-situo", "motor-io"}, offeredOptionIDs(resp.Options))
	assert.Equal(t, dto.OfferedOptionResponse{ID: "led-arms", Name: "LED bras", Category: "eclairage", Mode: "per_m2", PriceHT: "20.00"}, resp.Options[0])
	assert.Equal(t, "68.25", resp.Options[1].PriceHT)
	assert.Equal(t, "300.00", resp.Options[2].PriceHT)
	assert.True(t, resp.Options[2].From)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/options?width=3200&projection=1500", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decode[dto.OptionListResponse](t, w)
	require.Equal(t, []string{"remote-situo", "led-arms", "motor-io"}, offeredOptionIDs(resp.Options))
	assert.Equal(t, "96.00", resp.Options[1].PriceHT)
	assert.False(t, resp.Options[2].From)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/options?category=%C3%89metteur", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decode[dto.OptionListResponse](t, w)
	assert.Equal(t, "emetteur", resp.Category)
	assert.Equal(t, []string{"remote-situo"}, offeredOptionIDs(resp.Options))
}

func TestListOptionsByArmCount(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/belharra/options", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[dto.OptionListResponse](t, w)
	require.Len(t, resp.Options, 1)
	assert.Equal(t, "800.00", resp.Options[0].PriceHT)
	assert.True(t, resp.Options[0].From)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/belharra/options?width=9000&projection=3500", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decode[dto.OptionListResponse](t, w)
	require.Len(t, resp.Options, 1)
	assert.Equal(t, "1540.00", resp.Options[0].PriceHT, "four arms at 3500 mm")
}

func TestListOptionsErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"unknown product", "/api/v1/products/pergola/options", http.StatusNotFound, errormapper.ErrorCodeProductNotFound},
		{"malformed width", "/api/v1/products/kissimy/options?width=wide&projection=1500", http.StatusBadRequest, errormapper.ErrorCodeValidationFailure},
		{"width without projection", "/api/v1/products/kissimy/options?width=3200", http.StatusUnprocessableEntity, errormapper.ErrorCodeInvalidDimension},
		{"mechanical conflict", "/api/v1/products/belharra/options?width=6100&projection=3500", http.StatusUnprocessableEntity, errormapper.ErrorCodeInvalidDimension},
		{"fabrics above grid", "/api/v1/products/kissimy/fabrics?width=5000&projection=1500", http.StatusUnprocessableEntity, errormapper.ErrorCodeInvalidDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, tt.path, nil, false)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[dto.ErrorResponse](t, w).Code)
		})
	}
}

func TestListFabrics(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/fabrics", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[dto.FabricListResponse](t, w)
	require.Len(t, resp.Fabrics, 1)
	assert.Equal(t, "orchestra", resp.Fabrics[0].ID)
	assert.Equal(t, "10.00", resp.Fabrics[0].PriceM2HT)
	assert.Nil(t, resp.Fabrics[0].PriceHT)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/kissimy/fabrics?width=3200&projection=1500", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decode[dto.FabricListResponse](t, w)
	require.Len(t, resp.Fabrics, 1)
	require.NotNil(t, resp.Fabrics[0].PriceHT)
	assert.Equal(t, "48.00", *resp.Fabrics[0].PriceHT)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/belharra/fabrics", nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode[dto.FabricListResponse](t, w).Fabrics)
}

func TestCreateQuoteReportsArmCount(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/quotes", dto.CreateQuoteRequest{
		ProductID:  "belharra",
		Width:      7000,
		Projection: 3000,
		OptionIDs:  []string{"led-bras"},
	}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[dto.QuoteResponse](t, w)
	assert.Equal(t, 3, resp.Arms)
	require.Len(t, resp.OptionsHT, 1)
	assert.Equal(t, "1120.00", resp.OptionsHT[0].PriceHT)

	w = doJSON(t, router, http.MethodPost, "/api/v1/quotes", dto.CreateQuoteRequest{ProductID: "belharra", Width: 6100, Projection: 3500}, false)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, errormapper.ErrorCodeInvalidDimension, body.Code)
	assert.Contains(t, body.Error, "conflit des bras repliés")
}
