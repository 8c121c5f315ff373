package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Reyzen1/aicrypto-data-analysis/internal/domain/models"
	drepo "github.com/Reyzen1/aicrypto-data-analysis/internal/domain/repository"
	"github.com/Reyzen1/aicrypto-data-analysis/pkg/cache"
	applogger "github.com/Reyzen1/aicrypto-data-analysis/pkg/logger"
)

// ErrUnavailable signals that the coin catalog could not be fetched and no
// memoized copy exists. Non-fatal: callers degrade to an empty list.
var ErrUnavailable = errors.New("catalog: upstream unavailable")

// DefaultTTL is how long one successful catalog fetch is memoized. The list
// of tradeable assets changes rarely.
const DefaultTTL = 24 * time.Hour

var coinsKey = cache.GenerateKey("catalog", "coins")

// Loader fetches and memoizes the coin catalog.
type Loader struct {
	source  drepo.MarketSource
	cache   cache.Service
	ttl     time.Duration
	metrics drepo.Metrics
	logger  *applogger.Logger
}

// NewLoader creates a catalog loader over the given cache backend.
func NewLoader(source drepo.MarketSource, c cache.Service, ttl time.Duration, metrics drepo.Metrics, logger *applogger.Logger) *Loader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	return &Loader{source: source, cache: c, ttl: ttl, metrics: metrics, logger: logger}
}

// Assets returns the memoized catalog, refetching after TTL expiry. The
// memoization key is global: no parameters vary the result.
func (l *Loader) Assets(ctx context.Context) ([]models.Asset, error) {
	var cached []models.Asset
	if err := l.cache.Get(ctx, coinsKey, &cached); err == nil {
		return cached, nil
	}

	coins, err := l.source.CoinList(ctx)
	if err != nil {
		if l.logger != nil {
			l.logger.Warn("coin catalog fetch failed", applogger.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := l.cache.Set(ctx, coinsKey, coins, l.ttl); err != nil && l.logger != nil {
		l.logger.Warn("coin catalog memoization failed", applogger.Error(err))
	}
	l.metrics.RecordCatalogSize(len(coins))

	if l.logger != nil {
		l.logger.Info("coin catalog refreshed", applogger.Int("coins", len(coins)))
	}
	return coins, nil
}
