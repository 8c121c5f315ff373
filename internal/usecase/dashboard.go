package usecase

import (
	"context"
	"errors"
	"unicode"

	"github.com/Reyzen1/aicrypto-data-analysis/internal/domain/models"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/indicator"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/catalog"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/marketcache"
	applogger "github.com/Reyzen1/aicrypto-data-analysis/pkg/logger"
)

// ErrNoData signals that the requested window came back empty and there is
// nothing to analyze.
var ErrNoData = errors.New("no market data in requested window")

// FetchParams identifies one dashboard selection.
type FetchParams struct {
	AssetID  string
	Currency string
	Days     int
}

// ShouldRefetch reports whether moving from prev to next can require a new
// upstream fetch. Changing only the day count within a cadence bucket is
// always served by reslicing the cached full-width fetch; changing asset,
// currency, or crossing the cadence boundary restarts at the network path.
func ShouldRefetch(prev, next FetchParams) bool {
	if prev.AssetID != next.AssetID || prev.Currency != next.Currency {
		return true
	}
	return models.CadenceFor(prev.Days) != models.CadenceFor(next.Days)
}

// Dashboard aggregates the catalog, the session cache, and the indicator
// pipeline behind the HTTP endpoints.
type Dashboard struct {
	catalog *catalog.Loader
	session *marketcache.Session
	logger  *applogger.Logger
}

func NewDashboard(cat *catalog.Loader, session *marketcache.Session, logger *applogger.Logger) *Dashboard {
	return &Dashboard{catalog: cat, session: session, logger: logger}
}

// Coins lists the tradeable assets. On catalog failure the caller receives
// catalog.ErrUnavailable and should degrade to an empty list.
func (d *Dashboard) Coins(ctx context.Context) ([]models.Asset, error) {
	return d.catalog.Assets(ctx)
}

// Window returns the sliced market window for one selection.
func (d *Dashboard) Window(ctx context.Context, p FetchParams) (*models.MarketWindow, error) {
	return d.session.GetWindow(ctx, p.AssetID, p.Currency, p.Days)
}

// Indicators returns the window together with its freshly recomputed derived
// table. The table is never cached: it is ephemeral per request.
func (d *Dashboard) Indicators(ctx context.Context, p FetchParams) (*models.MarketWindow, *indicator.Table, error) {
	w, err := d.session.GetWindow(ctx, p.AssetID, p.Currency, p.Days)
	if err != nil {
		return nil, nil, err
	}
	if len(w.Prices) == 0 || len(w.Volumes) == 0 {
		return nil, nil, ErrNoData
	}
	return w, indicator.Compute(w.Prices, w.Volumes), nil
}

// Commentary derives the rule-based textual analysis for one selection.
func (d *Dashboard) Commentary(ctx context.Context, p FetchParams) (indicator.Commentary, error) {
	_, table, err := d.Indicators(ctx, p)
	if err != nil {
		return indicator.Commentary{}, err
	}
	return indicator.Comment(d.displayName(ctx, p.AssetID), table), nil
}

// displayName resolves an asset id to its catalog name, falling back to the
// capitalized id when the catalog is unavailable.
func (d *Dashboard) displayName(ctx context.Context, assetID string) string {
	coins, err := d.catalog.Assets(ctx)
	if err == nil {
		for _, c := range coins {
			if c.ID == assetID {
				return c.Name
			}
		}
	}
	return capitalize(assetID)
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
