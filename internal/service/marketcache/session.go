package marketcache

import (
	"context"
	"sync"
	"time"

	"github.com/Reyzen1/aicrypto-data-analysis/internal/domain/models"
	drepo "github.com/Reyzen1/aicrypto-data-analysis/internal/domain/repository"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/ratelimit"
	applogger "github.com/Reyzen1/aicrypto-data-analysis/pkg/logger"
)

type cacheKey struct {
	assetID  string
	currency string
	cadence  models.Cadence
}

type cacheEntry struct {
	chart     *models.MarketChart
	fetchedAt time.Time
}

// Session owns the per-session market-data state: the full-width fetch cache
// and the shared upstream throttle. Within one session each distinct
// (asset, currency, cadence) key triggers at most one upstream fetch; every
// window the user asks for afterwards is a suffix slice of that cached fetch.
//
// All state is mutex-guarded so a multi-session server only needs one Session
// per logical session; nothing here is package-global.
type Session struct {
	mu       sync.Mutex
	source   drepo.MarketSource
	throttle *ratelimit.Throttle
	metrics  drepo.Metrics
	logger   *applogger.Logger
	entries  map[cacheKey]*cacheEntry
}

// NewSession creates an empty session around an upstream source and throttle.
func NewSession(source drepo.MarketSource, throttle *ratelimit.Throttle, metrics drepo.Metrics, logger *applogger.Logger) *Session {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	return &Session{
		source:   source,
		throttle: throttle,
		metrics:  metrics,
		logger:   logger,
		entries:  make(map[cacheKey]*cacheEntry),
	}
}

// GetWindow returns the requested window for an asset/currency pair, fetching
// the cadence bucket's full width on first use and slicing locally afterwards.
// Changing only days within a bucket never touches the network; crossing the
// 90-day boundary switches buckets and forces a fresh fetch.
func (s *Session) GetWindow(ctx context.Context, assetID, currency string, days int) (*models.MarketWindow, error) {
	cadence := models.CadenceFor(days)
	key := cacheKey{assetID: assetID, currency: currency, cadence: cadence}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	s.metrics.RecordCacheLookup(string(cadence), ok)
	if !ok {
		chart, err := s.fetch(ctx, assetID, currency, cadence)
		if err != nil {
			// Failures are never cached; the next request retries.
			return nil, err
		}
		entry = &cacheEntry{chart: chart, fetchedAt: time.Now().UTC()}
		s.entries[key] = entry
	}

	return s.slice(assetID, currency, cadence, days, entry), nil
}

// Refresh drops both cadence buckets for a pair so the next request refetches.
func (s *Session) Refresh(assetID, currency string) {
	s.mu.Lock()
	delete(s.entries, cacheKey{assetID: assetID, currency: currency, cadence: models.CadenceHourly90})
	delete(s.entries, cacheKey{assetID: assetID, currency: currency, cadence: models.CadenceDaily365})
	s.mu.Unlock()
}

// Len reports the number of cached full-width fetches.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Session) fetch(ctx context.Context, assetID, currency string, cadence models.Cadence) (*models.MarketChart, error) {
	fetchDays := cadence.FetchDays()

	waited, err := s.throttle.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if waited > 0 {
		s.metrics.RecordThrottleWait(waited.Seconds())
		if s.logger != nil {
			s.logger.Debug("throttled before upstream call",
				applogger.String("asset", assetID),
				applogger.Duration("waited", waited),
			)
		}
	}

	start := time.Now()
	chart, err := s.source.MarketChart(ctx, assetID, currency, fetchDays)
	s.metrics.RecordFetchDuration(time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordFetch(string(cadence), "error")
		return nil, err
	}
	// The throttle clock advances only on success, at completion time.
	s.throttle.Record()
	s.metrics.RecordFetch(string(cadence), "ok")

	if s.logger != nil {
		s.logger.Info("fetched market chart",
			applogger.String("asset", assetID),
			applogger.String("currency", currency),
			applogger.String("cadence", string(cadence)),
			applogger.Int("days", fetchDays),
			applogger.Int("points", len(chart.Prices)),
		)
	}
	return chart, nil
}

func (s *Session) slice(assetID, currency string, cadence models.Cadence, days int, entry *cacheEntry) *models.MarketWindow {
	want := cadence.SlicePoints(days)
	prices := entry.chart.Prices.Tail(want)
	volumes := entry.chart.Volumes.Tail(want)

	// Fewer hourly points than requested is advisory, not an error: serve
	// what exists and flag it, matching upstream's loose points-per-day.
	partial := cadence == models.CadenceHourly90 && len(prices) < want && days > 1
	if partial && s.logger != nil {
		s.logger.Warn("hourly window has fewer points than requested",
			applogger.String("asset", assetID),
			applogger.Int("requested", want),
			applogger.Int("available", len(prices)),
		)
	}

	if last, ok := prices.Last(); ok {
		s.metrics.RecordLastPrice(assetID, currency, last.Value)
	}

	return &models.MarketWindow{
		AssetID:   assetID,
		Currency:  currency,
		Cadence:   cadence,
		Days:      days,
		Prices:    prices,
		Volumes:   volumes,
		Partial:   partial,
		FetchedAt: entry.fetchedAt,
	}
}
