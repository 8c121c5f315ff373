package di

import (
	"fmt"

	drepo "github.com/Reyzen1/aicrypto-data-analysis/internal/domain/repository"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/handler/api"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/catalog"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/coingecko"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/marketcache"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/ratelimit"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/usecase"
	"github.com/Reyzen1/aicrypto-data-analysis/pkg/cache"
	"github.com/Reyzen1/aicrypto-data-analysis/pkg/config"
	xhttp "github.com/Reyzen1/aicrypto-data-analysis/pkg/http"
	applogger "github.com/Reyzen1/aicrypto-data-analysis/pkg/logger"
	"github.com/Reyzen1/aicrypto-data-analysis/pkg/metrics"
	"github.com/Reyzen1/aicrypto-data-analysis/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideCatalogCache creates the catalog memoization backend: Redis when
// enabled, an in-process cache otherwise.
func ProvideCatalogCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Catalog.Redis.Enabled {
		c, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Catalog.Redis.Addr),
			cache.WithRedisPassword(cfg.Catalog.Redis.Password),
			cache.WithRedisDB(cfg.Catalog.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("catalog cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideMarketSource creates the CoinGecko API client.
func ProvideMarketSource(cfg *config.Config) drepo.MarketSource {
	return coingecko.New(cfg.CoinGecko.BaseURL, cfg.CoinGecko.Timeout)
}

// ProvideThrottle creates the process-wide upstream call throttle.
func ProvideThrottle(cfg *config.Config) *ratelimit.Throttle {
	return ratelimit.New(cfg.CoinGecko.MinCallInterval)
}

// ProvideSession creates the market window session cache.
func ProvideSession(source drepo.MarketSource, throttle *ratelimit.Throttle, m drepo.Metrics, l *applogger.Logger) *marketcache.Session {
	return marketcache.NewSession(source, throttle, m, l)
}

// ProvideCatalogLoader creates the memoizing coin catalog loader.
func ProvideCatalogLoader(source drepo.MarketSource, c cache.Service, cfg *config.Config, m drepo.Metrics, l *applogger.Logger) *catalog.Loader {
	return catalog.NewLoader(source, c, cfg.Catalog.TTL, m, l)
}

// ProvideDashboard creates the dashboard usecase.
func ProvideDashboard(cat *catalog.Loader, session *marketcache.Session, l *applogger.Logger) *usecase.Dashboard {
	return usecase.NewDashboard(cat, session, l)
}

// ProvideHandler creates the dashboard HTTP handler.
func ProvideHandler(l *applogger.Logger, dash *usecase.Dashboard) xhttp.Handler {
	return api.NewDashboardHandler(l, dash)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler, c cache.Service) *server.App {
	return server.New(cfg, l, h, c)
}
