package repository

import (
	"context"

	"github.com/Reyzen1/aicrypto-data-analysis/internal/domain/models"
)

// MarketSource provides the upstream market-data API: the static coin catalog
// and full-width historical market charts.
type MarketSource interface {
	CoinList(ctx context.Context) ([]models.Asset, error)
	MarketChart(ctx context.Context, assetID, currency string, days int) (*models.MarketChart, error)
}

// Metrics records operational metrics.
type Metrics interface {
	RecordFetch(cadence, outcome string)
	RecordCacheLookup(cadence string, hit bool)
	RecordThrottleWait(seconds float64)
	RecordFetchDuration(seconds float64)
	RecordLastPrice(asset, currency string, price float64)
	RecordCatalogSize(n int)
}

// NopMetrics is a Metrics that records nothing.
type NopMetrics struct{}

func (NopMetrics) RecordFetch(string, string)              {}
func (NopMetrics) RecordCacheLookup(string, bool)          {}
func (NopMetrics) RecordThrottleWait(float64)              {}
func (NopMetrics) RecordFetchDuration(float64)             {}
func (NopMetrics) RecordLastPrice(string, string, float64) {}
func (NopMetrics) RecordCatalogSize(int)                   {}
