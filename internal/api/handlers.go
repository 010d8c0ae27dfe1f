package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"energydash/internal/engine"
	"energydash/internal/models"
)

// Handler serves dashboard queries over the loaded dataset. The dataset
// pointer is swapped atomically by the background loader and the file
// watcher; every request reads a consistent snapshot.
type Handler struct {
	mu   sync.RWMutex
	ds   *engine.Dataset
	opts engine.Options
}

func NewHandler(ds *engine.Dataset, opts engine.Options) *Handler {
	return &Handler{ds: ds, opts: opts}
}

// SetDataset swaps in a freshly loaded dataset.
func (h *Handler) SetDataset(ds *engine.Dataset) {
	h.mu.Lock()
	h.ds = ds
	h.mu.Unlock()
}

func (h *Handler) dataset() *engine.Dataset {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ds
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/meta", h.GetMeta)
	api.GET("/summary", h.GetSummary)
	api.GET("/mix", h.GetMix)
	api.GET("/ranking", h.GetRanking)
	api.GET("/trends/consumption", h.GetConsumptionTrends)
	api.GET("/trends/renewable", h.GetRenewableTrend)
	api.GET("/growth", h.GetGrowth)
	api.GET("/insights", h.GetInsights)
	api.GET("/table", h.GetTable)
	api.GET("/dashboard", h.GetDashboard)
}

// --- HANDLERS ---

// requireDataset returns the current dataset, or a 503 while the
// background load is still running.
func (h *Handler) requireDataset() (*engine.Dataset, error) {
	ds := h.dataset()
	if ds == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is loading")
	}
	return ds, nil
}

// parseSelection builds a Selection from query params. An absent
// countries param means every country; from/to default to the dataset
// bounds.
func parseSelection(c echo.Context, ds *engine.Dataset) models.Selection {
	sel := models.Selection{
		FromYear: intParam(c, "from", ds.MinYear()),
		ToYear:   intParam(c, "to", ds.MaxYear()),
	}

	raw := c.QueryParam("countries")
	if raw == "" {
		sel.Countries = ds.Countries()
		return sel
	}
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			sel.Countries = append(sel.Countries, name)
		}
	}
	return sel
}

func intParam(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}

// GetMeta returns the values the UI controls are populated from.
func (h *Handler) GetMeta(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"countries": ds.Countries(),
		"min_year":  ds.MinYear(),
		"max_year":  ds.MaxYear(),
	})
}

func (h *Handler) GetSummary(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Summarize(ds, parseSelection(c, ds)))
}

func (h *Handler) GetMix(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	country := c.QueryParam("country")
	if country == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "country is required")
	}
	year := intParam(c, "year", ds.MaxYear())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"country": country,
		"year":    year,
		"mix":     engine.Mix(ds, country, year),
	})
}

func (h *Handler) GetRanking(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	year := intParam(c, "year", ds.MaxYear())
	limit := intParam(c, "limit", h.opts.TopN)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"year":    year,
		"ranking": engine.Ranking(ds, parseSelection(c, ds), year, limit),
	})
}

func (h *Handler) GetConsumptionTrends(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.ConsumptionTrends(ds, parseSelection(c, ds)))
}

func (h *Handler) GetRenewableTrend(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.RenewableTrend(ds, parseSelection(c, ds)))
}

func (h *Handler) GetGrowth(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	country := c.QueryParam("country")
	if country == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "country is required")
	}
	sel := parseSelection(c, ds)
	return c.JSON(http.StatusOK, engine.GrowthRate(ds, country, sel, h.opts.GrowthFormula))
}

func (h *Handler) GetInsights(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.ComputeInsights(ds, parseSelection(c, ds), h.opts.GrowthFormula))
}

func (h *Handler) GetTable(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Table(ds, parseSelection(c, ds)))
}

// GetDashboard bundles every per-selection metric in one response.
func (h *Handler) GetDashboard(c echo.Context) error {
	ds, err := h.requireDataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Compute(ds, parseSelection(c, ds), h.opts))
}
