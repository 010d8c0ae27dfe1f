package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energydash/internal/engine"
	"energydash/internal/models"
)

func testHandler() *Handler {
	ds := engine.NewDataset([]models.Record{
		{Country: "Alpha", Year: 2000, Coal: 100},
		{Country: "Alpha", Year: 2010, Coal: 50, Gas: 50},
		{Country: "Beta", Year: 2000, Coal: 40, Hydro: 40},
		{Country: "Beta", Year: 2010, Gas: 30, Wind: 60, Solar: 10},
	})
	return NewHandler(ds, engine.Options{GrowthFormula: engine.GrowthEndpoint, TopN: 10})
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestDataRoutesReturn503WhileLoading(t *testing.T) {
	h := NewHandler(nil, engine.Options{})

	for _, target := range []string{
		"/api/meta", "/api/summary", "/api/ranking", "/api/insights", "/api/dashboard",
	} {
		rec := get(h, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
}

func TestGetMeta(t *testing.T) {
	rec := get(testHandler(), "/api/meta")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta struct {
		Countries []string `json:"countries"`
		MinYear   int      `json:"min_year"`
		MaxYear   int      `json:"max_year"`
	}
	decode(t, rec, &meta)
	assert.Equal(t, []string{"Alpha", "Beta"}, meta.Countries)
	assert.Equal(t, 2000, meta.MinYear)
	assert.Equal(t, 2010, meta.MaxYear)
}

func TestGetSummaryDefaultsToAllCountries(t *testing.T) {
	rec := get(testHandler(), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var sum models.Summary
	decode(t, rec, &sum)
	assert.Equal(t, 380.0, sum.Total)
	assert.Equal(t, 2, sum.Countries)
}

func TestGetSummaryWithSelection(t *testing.T) {
	rec := get(testHandler(), "/api/summary?countries=Alpha&from=2005&to=2010")
	require.Equal(t, http.StatusOK, rec.Code)

	var sum models.Summary
	decode(t, rec, &sum)
	assert.Equal(t, 100.0, sum.Total)
	assert.Equal(t, 1, sum.Countries)
}

func TestGetMix(t *testing.T) {
	rec := get(testHandler(), "/api/mix?country=Beta&year=2010")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Country string               `json:"country"`
		Year    int                  `json:"year"`
		Mix     []models.SeriesPoint `json:"mix"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "Beta", resp.Country)
	require.Len(t, resp.Mix, len(models.SourceNames))

	var total float64
	for _, p := range resp.Mix {
		total += p.Value
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestGetMixRequiresCountry(t *testing.T) {
	rec := get(testHandler(), "/api/mix")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRanking(t *testing.T) {
	rec := get(testHandler(), "/api/ranking?year=2000&limit=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Year    int                   `json:"year"`
		Ranking []models.RankingEntry `json:"ranking"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, 2000, resp.Year)
	require.Len(t, resp.Ranking, 1)
	assert.Equal(t, "Alpha", resp.Ranking[0].Country)
}

func TestGetGrowth(t *testing.T) {
	rec := get(testHandler(), "/api/growth?country=Beta")
	require.Equal(t, http.StatusOK, rec.Code)

	var g models.Growth
	decode(t, rec, &g)
	require.True(t, g.Available)
	assert.InDelta(t, 25.0, g.Percent, 1e-9)
}

func TestGetDashboard(t *testing.T) {
	rec := get(testHandler(), "/api/dashboard?countries=Alpha,Beta")
	require.Equal(t, http.StatusOK, rec.Code)

	var data models.DashboardData
	decode(t, rec, &data)
	assert.Equal(t, 380.0, data.Summary.Total)
	assert.Len(t, data.Ranking, 2)
	assert.Len(t, data.ConsumptionTrends, 2)
	assert.True(t, data.Insights.TopConsumer.Available)
}

func TestSetDatasetSwapsData(t *testing.T) {
	h := NewHandler(nil, engine.Options{})
	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/api/meta").Code)

	h.SetDataset(engine.NewDataset([]models.Record{{Country: "Alpha", Year: 2000, Coal: 1}}))
	assert.Equal(t, http.StatusOK, get(h, "/api/meta").Code)
}
