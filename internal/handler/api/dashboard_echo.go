package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Reyzen1/aicrypto-data-analysis/internal/domain/models"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/indicator"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/catalog"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/service/coingecko"
	"github.com/Reyzen1/aicrypto-data-analysis/internal/usecase"
	xhttp "github.com/Reyzen1/aicrypto-data-analysis/pkg/http"
	xlogger "github.com/Reyzen1/aicrypto-data-analysis/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler exposes the dashboard data API over Echo.
type DashboardHandler struct {
	logger *xlogger.Logger
	dash   *usecase.Dashboard
}

func NewDashboardHandler(logger *xlogger.Logger, dash *usecase.Dashboard) *DashboardHandler {
	return &DashboardHandler{logger: logger, dash: dash}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/coins", h.Coins)
	g.GET("/market", h.Market)
	g.GET("/indicators", h.Indicators)
	g.GET("/commentary", h.Commentary)
	e.GET("/healthz", h.Health)
}

type coinsPayload struct {
	Coins    []models.Asset `json:"coins"`
	Advisory string         `json:"advisory,omitempty"`
}

// Coins lists tradeable assets. A dead catalog upstream degrades to an empty
// list with an advisory rather than an error.
func (h *DashboardHandler) Coins(c echo.Context) error {
	coins, err := h.dash.Coins(c.Request().Context())
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			h.logger.Warn("serving empty coin list", xlogger.Error(err))
			return xhttp.SuccessResponse(c, coinsPayload{
				Coins:    []models.Asset{},
				Advisory: "coin catalog temporarily unavailable, retry later",
			})
		}
		h.logger.Error("coins usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, coinsPayload{Coins: coins})
}

// Market returns the sliced price/volume window for one selection.
func (h *DashboardHandler) Market(c echo.Context) error {
	req := &models.MarketRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	w, err := h.dash.Window(c.Request().Context(), toParams(req.Coin, req.Currency, req.Days))
	if err != nil {
		return h.dataError(c, "market", err)
	}
	return xhttp.SuccessResponse(c, w)
}

type indicatorsPayload struct {
	AssetID   string            `json:"asset_id"`
	Currency  string            `json:"currency"`
	Cadence   models.Cadence    `json:"cadence"`
	Days      int               `json:"days"`
	Partial   bool              `json:"partial"`
	FetchedAt time.Time         `json:"fetched_at"`
	Rows      []indicator.Row   `json:"rows"`
	Summary   indicator.Summary `json:"summary"`
}

// Indicators returns the freshly recomputed derived table for one selection.
func (h *DashboardHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	w, table, err := h.dash.Indicators(c.Request().Context(), toParams(req.Coin, req.Currency, req.Days))
	if err != nil {
		return h.dataError(c, "indicators", err)
	}
	return xhttp.SuccessResponse(c, indicatorsPayload{
		AssetID:   w.AssetID,
		Currency:  w.Currency,
		Cadence:   w.Cadence,
		Days:      w.Days,
		Partial:   w.Partial,
		FetchedAt: w.FetchedAt,
		Rows:      table.Rows(),
		Summary:   table.Summarize(),
	})
}

// Commentary returns the rule-based textual analysis for one selection.
func (h *DashboardHandler) Commentary(c echo.Context) error {
	req := &models.CommentaryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	commentary, err := h.dash.Commentary(c.Request().Context(), toParams(req.Coin, req.Currency, req.Days))
	if err != nil {
		return h.dataError(c, "commentary", err)
	}
	return xhttp.SuccessResponse(c, commentary)
}

// Health is a liveness probe.
func (h *DashboardHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// dataError maps domain failures to HTTP ones: upstream fetch failures become
// 502, empty windows 404, anything else 500.
func (h *DashboardHandler) dataError(c echo.Context, op string, err error) error {
	var fe *coingecko.FetchError
	switch {
	case errors.As(err, &fe):
		h.logger.Warn("upstream fetch failed", xlogger.String("op", op), xlogger.Error(err))
		return xhttp.AppErrorResponse(c,
			xhttp.NewAppError("ERR_UPSTREAM", "", fe.Error(), http.StatusBadGateway).WithError(fe))
	case errors.Is(err, usecase.ErrNoData):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no market data for the requested window"))
	default:
		h.logger.Error("dashboard usecase error", xlogger.String("op", op), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}

func toParams(coin, currency string, days int) usecase.FetchParams {
	return usecase.FetchParams{AssetID: coin, Currency: currency, Days: days}
}
