package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/catalog"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/coingecko"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/marketcache"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/ratelimit"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/usecase"
	"github.com/Reyzen1/aicrypto-data-analysis/pkg/cache"
	xhttp "github.com/Reyzen1/aicrypto-data-analysis/pkg/http"
	applogger "github.com/Reyzen1/aicrypto-data-analysis/pkg/logger"

	"github.com/labstack/echo/v4"
)

// upstreamFixture serves canned CoinGecko responses for the full
// handler -> usecase -> session -> client chain.
func upstreamFixture(t *testing.T, healthy bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/coins/list":
			_, _ = w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"}]`))
		case strings.HasSuffix(r.URL.Path, "/market_chart"):
			var sb strings.Builder
			sb.WriteString(`{"prices":[`)
			base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
			for i := 0; i < 90*24; i++ {
				if i > 0 {
					sb.WriteString(",")
				}
				ts := base + int64(i)*3600_000
				sb.WriteString("[")
				sb.WriteString(jsonNum(ts))
				sb.WriteString(",")
				sb.WriteString(jsonNum(40000 + int64(i%50)))
				sb.WriteString("]")
			}
			sb.WriteString(`],"total_volumes":[`)
			for i := 0; i < 90*24; i++ {
				if i > 0 {
					sb.WriteString(",")
				}
				ts := base + int64(i)*3600_000
				sb.WriteString("[")
				sb.WriteString(jsonNum(ts))
				sb.WriteString(",1000000]")
			}
			sb.WriteString(`]}`)
			_, _ = w.Write([]byte(sb.String()))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func jsonNum(v int64) string {
	return strconv.FormatInt(v, 10)
}

func newTestHandler(t *testing.T, upstream string) *echo.Echo {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	src := coingecko.New(upstream, 5*time.Second)
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })

	cat := catalog.NewLoader(src, mem, time.Hour, nil, l)
	session := marketcache.NewSession(src, ratelimit.New(time.Millisecond), nil, l)
	dash := usecase.NewDashboard(cat, session, l)
	h := NewDashboardHandler(l, dash)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doGET(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (int, json.RawMessage) {
	t.Helper()
	var env struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env.Status, env.Data
}

func TestCoinsEndpoint(t *testing.T) {
	srv := upstreamFixture(t, true)
	defer srv.Close()
	e := newTestHandler(t, srv.URL)

	rec := doGET(e, "/api/coins")
	status, data := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}

	var payload coinsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Coins) != 1 || payload.Coins[0].ID != "bitcoin" {
		t.Fatalf("coins: %+v", payload.Coins)
	}
	if payload.Advisory != "" {
		t.Fatalf("unexpected advisory: %q", payload.Advisory)
	}
}

func TestCoinsEndpointDegrades(t *testing.T) {
	srv := upstreamFixture(t, false)
	defer srv.Close()
	e := newTestHandler(t, srv.URL)

	rec := doGET(e, "/api/coins")
	if rec.Code != http.StatusOK {
		t.Fatalf("http status %d, want 200 with advisory", rec.Code)
	}
	_, data := decodeEnvelope(t, rec)

	var payload coinsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Coins) != 0 {
		t.Fatalf("expected empty coin list")
	}
	if payload.Advisory == "" {
		t.Fatalf("expected advisory")
	}
}

func TestMarketEndpoint(t *testing.T) {
	srv := upstreamFixture(t, true)
	defer srv.Close()
	e := newTestHandler(t, srv.URL)

	rec := doGET(e, "/api/market?coin=bitcoin&currency=usd&days=5")
	status, data := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status %d: %s", status, rec.Body.String())
	}

	var w struct {
		AssetID string `json:"asset_id"`
		Cadence string `json:"cadence"`
		Prices  []struct {
			Value float64 `json:"value"`
		} `json:"prices"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		t.Fatalf("decode window: %v", err)
	}
	if w.AssetID != "bitcoin" || w.Cadence != "hourly_90" {
		t.Fatalf("window: %+v", w)
	}
	if len(w.Prices) != 5*24 {
		t.Fatalf("got %d points, want 120", len(w.Prices))
	}
}

func TestMarketEndpointValidation(t *testing.T) {
	srv := upstreamFixture(t, true)
	defer srv.Close()
	e := newTestHandler(t, srv.URL)

	cases := []string{
		"/api/market",                                // missing coin
		"/api/market?coin=bitcoin&currency=xxx",      // bad currency
		"/api/market?coin=bitcoin&days=500",          // days over cap
		"/api/market?coin=bitcoin&days=-3",           // negative days
	}
	for _, target := range cases {
		rec := doGET(e, target)
		status, _ := decodeEnvelope(t, rec)
		if status != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", target, status)
		}
	}
}

func TestMarketEndpointDefaults(t *testing.T) {
	srv := upstreamFixture(t, true)
	defer srv.Close()
	e := newTestHandler(t, srv.URL)

	rec := doGET(e, "/api/market?coin=bitcoin")
	status, data := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status %d: %s", status, rec.Body.String())
	}

	var w struct {
		Currency string `json:"currency"`
		Days     int    `json:"days"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		t.Fatalf("decode window: %v", err)
	}
	if w.Currency != "usd" || w.Days != 90 {
		t.Fatalf("defaults not applied: %+v", w)
	}
}

func TestIndicatorsEndpoint(t *testing.T) {
	srv := upstreamFixture(t, true)
	defer srv.Close()
	e := newTestHandler(t, srv.URL)

	rec := doGET(e, "/api/indicators?coin=bitcoin&days=7")
	status, data := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status %d: %s", status, rec.Body.String())
	}

	var payload struct {
		Rows []struct {
			Price float64  `json:"price"`
			SMA10 *float64 `json:"sma_10"`
			RSI14 *float64 `json:"rsi_14"`
		} `json:"rows"`
		Summary struct {
			Bars        int  `json:"bars"`
			MACDSettled bool `json:"macd_settled"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Rows) != 7*24 {
		t.Fatalf("got %d rows, want 168", len(payload.Rows))
	}
	if payload.Summary.Bars != 7*24 || !payload.Summary.MACDSettled {
		t.Fatalf("summary: %+v", payload.Summary)
	}
	// Early bars carry nulls for warmup-bound columns; late bars are filled.
	if payload.Rows[0].SMA10 != nil {
		t.Fatalf("row 0 sma_10 should be null")
	}
	if payload.Rows[len(payload.Rows)-1].SMA10 == nil || payload.Rows[len(payload.Rows)-1].RSI14 == nil {
		t.Fatalf("last row missing indicator values")
	}
}

func TestCommentaryEndpoint(t *testing.T) {
	srv := upstreamFixture(t, true)
	defer srv.Close()
	e := newTestHandler(t, srv.URL)

	rec := doGET(e, "/api/commentary?coin=bitcoin&days=14")
	status, data := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status %d: %s", status, rec.Body.String())
	}

	var c struct {
		Volatility string `json:"volatility"`
		Trend      string `json:"trend"`
		RSI        string `json:"rsi"`
	}
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("decode commentary: %v", err)
	}
	// The name comes from the catalog, not the raw id.
	if !strings.Contains(c.Volatility, "Bitcoin") {
		t.Fatalf("volatility section: %q", c.Volatility)
	}
	if c.Trend == "" || c.RSI == "" {
		t.Fatalf("empty sections: %+v", c)
	}
}

func TestMarketEndpointUpstreamDown(t *testing.T) {
	srv := upstreamFixture(t, false)
	defer srv.Close()
	e := newTestHandler(t, srv.URL)

	rec := doGET(e, "/api/market?coin=bitcoin&days=5")
	status, data := decodeEnvelope(t, rec)
	if status != http.StatusBadGateway {
		t.Fatalf("status %d, want 502", status)
	}

	var appErrs []xhttp.AppError
	if err := json.Unmarshal(data, &appErrs); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if len(appErrs) != 1 || appErrs[0].Code != "ERR_UPSTREAM" {
		t.Fatalf("errors: %+v", appErrs)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := upstreamFixture(t, true)
	defer srv.Close()
	e := newTestHandler(t, srv.URL)

	rec := doGET(e, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}
