package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Reyzen1/aicrypto-data-analysis/internal/domain/models"
	drepo "github.com/Reyzen1/aicrypto-data-analysis/internal/domain/repository"
	xhttp "github.com/Reyzen1/aicrypto-data-analysis/pkg/http"
)

// DefaultBaseURL is the public CoinGecko v3 API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client implements a MarketSource backed by the CoinGecko REST API.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a CoinGecko client. An empty baseURL falls back to the public API.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// CoinList fetches the full catalog of supported assets.
func (c *Client) CoinList(ctx context.Context) ([]models.Asset, error) {
	var coins []models.Asset
	err := c.getJSON(ctx, "coins/list", c.baseURL+"/coins/list", nil, &coins)
	if err != nil {
		return nil, err
	}
	return coins, nil
}

// marketChartResponse is the upstream market_chart payload. Each entry is a
// [timestamp_ms, value] pair; anything else is a malformed response.
type marketChartResponse struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// MarketChart fetches `days` of history for one asset/currency pair. The
// upstream chooses granularity from the window size; points come oldest first.
func (c *Client) MarketChart(ctx context.Context, assetID, currency string, days int) (*models.MarketChart, error) {
	op := fmt.Sprintf("market_chart %s/%s/%dd", assetID, currency, days)
	u := fmt.Sprintf("%s/coins/%s/market_chart", c.baseURL, assetID)
	params := map[string][]string{
		"vs_currency": {currency},
		"days":        {strconv.Itoa(days)},
	}

	var raw marketChartResponse
	if err := c.getJSON(ctx, op, u, params, &raw); err != nil {
		return nil, err
	}

	prices, err := toSeries(raw.Prices)
	if err != nil {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("prices: %w", err)}
	}
	volumes, err := toSeries(raw.TotalVolumes)
	if err != nil {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("total_volumes: %w", err)}
	}
	return &models.MarketChart{Prices: prices, Volumes: volumes}, nil
}

func (c *Client) getJSON(ctx context.Context, op, url string, params map[string][]string, dest interface{}) error {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         url,
		QueryParams: params,
	})
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("upstream: %s", string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("decode json: %w", err)}
	}
	return nil
}

// toSeries converts raw [timestamp_ms, value] pairs, failing fast on malformed
// entries instead of deferring to downstream nil dereferences.
func toSeries(pairs [][]float64) (models.Series, error) {
	out := make(models.Series, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("entry %d: expected [timestamp, value] pair, got %d elements", i, len(p))
		}
		out = append(out, models.Point{
			Time:  time.UnixMilli(int64(p[0])).UTC(),
			Value: p[1],
		})
	}
	return out, nil
}

var _ drepo.MarketSource = (*Client)(nil)
