package engine

import (
	"math"
	"sort"

	"energydash/internal/models"
)

// GrowthFormula selects how a country's growth rate is derived from its
// first and last observed values.
type GrowthFormula string

const (
	// GrowthEndpoint is (last-first)/first as a percentage.
	GrowthEndpoint GrowthFormula = "endpoint"
	// GrowthCompound is ((last/first)^(1/n) - 1) as a percentage, with
	// n the number of observations.
	GrowthCompound GrowthFormula = "compound"
)

// DefaultTopN bounds rankings when the caller passes no limit.
const DefaultTopN = 10

// Options tune a computation pass.
type Options struct {
	GrowthFormula GrowthFormula
	TopN          int
}

func (o Options) withDefaults() Options {
	if o.GrowthFormula == "" {
		o.GrowthFormula = GrowthEndpoint
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	return o
}

// resolvedSelection is a selection checked against dataset bounds:
// unknown countries removed, year range clamped. An empty country set
// stays empty and yields empty results downstream.
type resolvedSelection struct {
	countries map[string]bool
	from, to  int
}

func (rs resolvedSelection) contains(r models.Record) bool {
	return rs.countries[r.Country] && r.Year >= rs.from && r.Year <= rs.to
}

func resolve(ds *Dataset, sel models.Selection) resolvedSelection {
	rs := resolvedSelection{countries: make(map[string]bool)}
	if ds.Len() == 0 {
		return rs
	}

	known := make(map[string]bool, len(ds.Countries()))
	for _, c := range ds.Countries() {
		known[c] = true
	}
	for _, c := range sel.Countries {
		if known[c] {
			rs.countries[c] = true
		}
	}

	rs.from, rs.to = sel.FromYear, sel.ToYear
	if rs.from == 0 || rs.from < ds.MinYear() {
		rs.from = ds.MinYear()
	}
	if rs.to == 0 || rs.to > ds.MaxYear() {
		rs.to = ds.MaxYear()
	}
	if rs.from > rs.to {
		rs.countries = map[string]bool{}
	}
	return rs
}

// selectRecords returns the dataset records matching a resolved
// selection, preserving dataset order (country asc, year asc).
func selectRecords(ds *Dataset, rs resolvedSelection) []models.Record {
	if len(rs.countries) == 0 {
		return nil
	}
	var out []models.Record
	for _, r := range ds.Records() {
		if rs.contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize computes the overview metrics for a selection. All values
// are 0 for an empty selection, including the renewable share when the
// renewable+fossil denominator is zero.
func Summarize(ds *Dataset, sel models.Selection) models.Summary {
	rs := resolve(ds, sel)
	recs := selectRecords(ds, rs)

	var summary models.Summary
	var renewable, fossil float64
	seen := make(map[string]bool)
	for _, r := range recs {
		summary.Total += r.Primary()
		renewable += r.Renewable()
		fossil += r.Fossil()
		seen[r.Country] = true
	}
	summary.Countries = len(seen)
	if summary.Countries > 0 {
		summary.AvgPerCountry = summary.Total / float64(summary.Countries)
	}
	if renewable+fossil > 0 {
		summary.RenewableShare = renewable / (renewable + fossil) * 100
	}
	return summary
}

// Mix returns the percentage breakdown across the eight sources for one
// (country, year) pair, in models.SourceNames order. A missing record or
// an all-zero row yields all-zero percentages, never a division error.
func Mix(ds *Dataset, country string, year int) []models.SeriesPoint {
	points := make([]models.SeriesPoint, len(models.SourceNames))
	for i, name := range models.SourceNames {
		points[i] = models.SeriesPoint{Label: name}
	}

	rec, ok := ds.At(country, year)
	if !ok {
		return points
	}
	total := rec.SourceTotal()
	if total == 0 {
		return points
	}
	for i, v := range rec.SourceValues() {
		points[i].Value = v / total * 100
	}
	return points
}

// Ranking returns the selection's countries with data for the given
// year, sorted by total consumption descending, ties broken by country
// name ascending, truncated to topN.
func Ranking(ds *Dataset, sel models.Selection, year, topN int) []models.RankingEntry {
	if topN <= 0 {
		topN = DefaultTopN
	}
	rs := resolve(ds, sel)

	var entries []models.RankingEntry
	for c := range rs.countries {
		if r, ok := ds.At(c, year); ok {
			entries = append(entries, models.RankingEntry{Country: c, Total: r.Primary()})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].Country < entries[j].Country
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// RenewableTrend totals renewable consumption across the selected
// countries for each year in range, ascending. Empty selection yields
// an empty sequence.
func RenewableTrend(ds *Dataset, sel models.Selection) []models.TrendPoint {
	rs := resolve(ds, sel)
	recs := selectRecords(ds, rs)
	if len(recs) == 0 {
		return nil
	}

	byYear := make(map[int]float64)
	for _, r := range recs {
		byYear[r.Year] += r.Renewable()
	}

	var points []models.TrendPoint
	for _, y := range ds.Years() {
		if y < rs.from || y > rs.to {
			continue
		}
		points = append(points, models.TrendPoint{Year: y, Value: byYear[y]})
	}
	return points
}

// ConsumptionTrends returns one primary-consumption time series per
// selected country, countries ascending, years ascending.
func ConsumptionTrends(ds *Dataset, sel models.Selection) []models.TrendSeries {
	rs := resolve(ds, sel)
	recs := selectRecords(ds, rs)

	var series []models.TrendSeries
	for _, r := range recs {
		if len(series) == 0 || series[len(series)-1].Country != r.Country {
			series = append(series, models.TrendSeries{Country: r.Country})
		}
		last := &series[len(series)-1]
		last.Points = append(last.Points, models.TrendPoint{Year: r.Year, Value: r.Primary()})
	}
	return series
}

// GrowthRate computes the percentage change in a country's primary
// consumption between its first and last available years within the
// selection's range. The result is unavailable (not an error) when
// fewer than two years exist or the first value is zero.
func GrowthRate(ds *Dataset, country string, sel models.Selection, formula GrowthFormula) models.Growth {
	rs := resolve(ds, sel)

	var points []models.TrendPoint
	for _, r := range ds.Records() {
		if r.Country == country && r.Year >= rs.from && r.Year <= rs.to {
			points = append(points, models.TrendPoint{Year: r.Year, Value: r.Primary()})
		}
	}

	g := models.Growth{Country: country}
	if len(points) < 2 {
		return g
	}
	first, last := points[0], points[len(points)-1]
	if first.Value == 0 {
		return g
	}

	g.FirstYear, g.LastYear = first.Year, last.Year
	g.Available = true
	switch formula {
	case GrowthCompound:
		g.Percent = (math.Pow(last.Value/first.Value, 1/float64(len(points))) - 1) * 100
	default:
		g.Percent = (last.Value - first.Value) / first.Value * 100
	}
	return g
}

// ComputeInsights derives the three headline facts for a selection.
// Each degrades to Available=false instead of failing when no country
// qualifies.
func ComputeInsights(ds *Dataset, sel models.Selection, formula GrowthFormula) models.Insights {
	rs := resolve(ds, sel)
	recs := selectRecords(ds, rs)

	insights := models.Insights{
		TopConsumer:    models.Insight{Label: "Highest Consumer"},
		FastestGrowing: models.Insight{Label: "Fastest Growing"},
		MostRenewable:  models.Insight{Label: "Most Renewable"},
	}
	if len(recs) == 0 {
		return insights
	}

	// Highest single-year consumer. Records are ordered, so strict
	// comparison keeps the tie-break deterministic.
	for _, r := range recs {
		if !insights.TopConsumer.Available || r.Primary() > insights.TopConsumer.Value {
			insights.TopConsumer = models.Insight{
				Label:     "Highest Consumer",
				Country:   r.Country,
				Value:     r.Primary(),
				Year:      r.Year,
				Available: true,
			}
		}
	}

	// Fastest growing among countries with a defined growth rate.
	for _, c := range sortedCountries(rs) {
		g := GrowthRate(ds, c, sel, formula)
		if !g.Available {
			continue
		}
		if !insights.FastestGrowing.Available || g.Percent > insights.FastestGrowing.Value {
			insights.FastestGrowing = models.Insight{
				Label:     "Fastest Growing",
				Country:   c,
				Value:     g.Percent,
				Year:      g.LastYear,
				Available: true,
			}
		}
	}

	// Highest renewable share in the most recent selected year.
	latest := recs[0].Year
	for _, r := range recs {
		if r.Year > latest {
			latest = r.Year
		}
	}
	for _, c := range sortedCountries(rs) {
		r, ok := ds.At(c, latest)
		if !ok {
			continue
		}
		denom := r.Renewable() + r.Fossil()
		if denom == 0 {
			continue
		}
		share := r.Renewable() / denom * 100
		if !insights.MostRenewable.Available || share > insights.MostRenewable.Value {
			insights.MostRenewable = models.Insight{
				Label:     "Most Renewable",
				Country:   c,
				Value:     share,
				Year:      latest,
				Available: true,
			}
		}
	}
	return insights
}

// Table builds the latest-year detail rows for the selected countries,
// country ascending.
func Table(ds *Dataset, sel models.Selection) []models.TableRow {
	rs := resolve(ds, sel)
	recs := selectRecords(ds, rs)
	if len(recs) == 0 {
		return nil
	}

	latest := recs[0].Year
	for _, r := range recs {
		if r.Year > latest {
			latest = r.Year
		}
	}

	var rows []models.TableRow
	for _, c := range sortedCountries(rs) {
		r, ok := ds.At(c, latest)
		if !ok {
			continue
		}
		row := models.TableRow{
			Country:         c,
			Year:            latest,
			Primary:         r.Primary(),
			Coal:            r.Coal,
			Gas:             r.Gas,
			Oil:             r.Oil,
			Nuclear:         r.Nuclear,
			Hydro:           r.Hydro,
			Wind:            r.Wind,
			Solar:           r.Solar,
			OtherRenewables: r.OtherRenewables,
		}
		if denom := r.Renewable() + r.Fossil(); denom > 0 {
			row.RenewableShare = r.Renewable() / denom * 100
		}
		if r.Population > 0 {
			row.PerCapita = r.Primary() / r.Population
		}
		rows = append(rows, row)
	}
	return rows
}

// Compute bundles every per-selection metric into one result. It is a
// pure function of (dataset, selection, options): identical inputs
// yield identical results.
func Compute(ds *Dataset, sel models.Selection, opts Options) *models.DashboardData {
	opts = opts.withDefaults()
	rs := resolve(ds, sel)

	rankingYear := rs.to
	return &models.DashboardData{
		Summary:           Summarize(ds, sel),
		Ranking:           Ranking(ds, sel, rankingYear, opts.TopN),
		RenewableTrend:    RenewableTrend(ds, sel),
		ConsumptionTrends: ConsumptionTrends(ds, sel),
		Insights:          ComputeInsights(ds, sel, opts.GrowthFormula),
		Table:             Table(ds, sel),
	}
}

func sortedCountries(rs resolvedSelection) []string {
	out := make([]string, 0, len(rs.countries))
	for c := range rs.countries {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
