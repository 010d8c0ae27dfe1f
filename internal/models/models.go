package models

// SourceNames lists the eight energy source fields in the order every
// mix breakdown reports them.
var SourceNames = []string{
	"coal", "gas", "oil", "nuclear",
	"hydro", "wind", "solar", "other_renewables",
}

// Record is one (country, year) energy observation, in TWh.
type Record struct {
	Country         string  `json:"country"`
	Year            int     `json:"year"`
	Coal            float64 `json:"coal"`
	Gas             float64 `json:"gas"`
	Oil             float64 `json:"oil"`
	Nuclear         float64 `json:"nuclear"`
	Hydro           float64 `json:"hydro"`
	Wind            float64 `json:"wind"`
	Solar           float64 `json:"solar"`
	OtherRenewables float64 `json:"other_renewables"`

	// PrimaryEnergy is the reported total; 0 when the column was absent.
	PrimaryEnergy float64 `json:"primary_energy"`
	Population    float64 `json:"population,omitempty"`
}

// SourceValues returns the eight source fields in SourceNames order.
func (r Record) SourceValues() [8]float64 {
	return [8]float64{
		r.Coal, r.Gas, r.Oil, r.Nuclear,
		r.Hydro, r.Wind, r.Solar, r.OtherRenewables,
	}
}

// SourceTotal is the sum across all eight sources.
func (r Record) SourceTotal() float64 {
	var total float64
	for _, v := range r.SourceValues() {
		total += v
	}
	return total
}

// Renewable sums the non-fossil, non-nuclear sources.
func (r Record) Renewable() float64 {
	return r.Hydro + r.Wind + r.Solar + r.OtherRenewables
}

// Fossil sums coal, gas and oil.
func (r Record) Fossil() float64 {
	return r.Coal + r.Gas + r.Oil
}

// Primary is the reported total consumption, falling back to the sum of
// sources when the dataset carried no primary energy column.
func (r Record) Primary() float64 {
	if r.PrimaryEnergy > 0 {
		return r.PrimaryEnergy
	}
	return r.SourceTotal()
}

// Selection is the user-chosen filter driving one computation pass.
// An empty Countries slice means all countries; the year range is
// clamped to dataset bounds by the engine.
type Selection struct {
	Countries []string `json:"countries"`
	FromYear  int      `json:"from_year"`
	ToYear    int      `json:"to_year"`
}

// Summary holds the overview metrics for a selection.
type Summary struct {
	Total          float64 `json:"total"`
	AvgPerCountry  float64 `json:"avg_per_country"`
	RenewableShare float64 `json:"renewable_share"`
	Countries      int     `json:"countries"`
}

// SeriesPoint is one labeled value in a category breakdown (pie/bar input).
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TrendPoint is one year of a time series.
type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// TrendSeries is a per-country time series (line chart input).
type TrendSeries struct {
	Country string       `json:"country"`
	Points  []TrendPoint `json:"points"`
}

// RankingEntry is one row of a top-consumers ranking.
type RankingEntry struct {
	Country string  `json:"country"`
	Total   float64 `json:"total"`
}

// Growth is a first-to-last-year percentage change for one country.
// Available is false when fewer than two years exist or the first
// value is zero.
type Growth struct {
	Country   string  `json:"country"`
	Percent   float64 `json:"percent"`
	FirstYear int     `json:"first_year"`
	LastYear  int     `json:"last_year"`
	Available bool    `json:"available"`
}

// Insight is one derived headline fact.
type Insight struct {
	Label     string  `json:"label"`
	Country   string  `json:"country,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Year      int     `json:"year,omitempty"`
	Available bool    `json:"available"`
}

// Insights bundles the three headline facts for a selection.
type Insights struct {
	TopConsumer    Insight `json:"top_consumer"`
	FastestGrowing Insight `json:"fastest_growing"`
	MostRenewable  Insight `json:"most_renewable"`
}

// TableRow is one latest-year detail row.
type TableRow struct {
	Country         string  `json:"country"`
	Year            int     `json:"year"`
	Primary         float64 `json:"primary_energy"`
	Coal            float64 `json:"coal"`
	Gas             float64 `json:"gas"`
	Oil             float64 `json:"oil"`
	Nuclear         float64 `json:"nuclear"`
	Hydro           float64 `json:"hydro"`
	Wind            float64 `json:"wind"`
	Solar           float64 `json:"solar"`
	OtherRenewables float64 `json:"other_renewables"`
	RenewableShare  float64 `json:"renewable_share"`
	PerCapita       float64 `json:"per_capita,omitempty"`
}

// DashboardData is the full computation result for one selection.
type DashboardData struct {
	Summary           Summary        `json:"summary"`
	Ranking           []RankingEntry `json:"ranking"`
	RenewableTrend    []TrendPoint   `json:"renewable_trend"`
	ConsumptionTrends []TrendSeries  `json:"consumption_trends"`
	Insights          Insights       `json:"insights"`
	Table             []TableRow     `json:"table"`
}
