package engine

import (
	"sort"

	"energydash/internal/models"
)

// Dataset is an immutable collection of country-year records, ordered by
// country then year. It is built once at startup and never mutated;
// every filter produces a derived slice.
type Dataset struct {
	records   []models.Record
	index     map[recordKey]int
	countries []string
	years     []int
}

type recordKey struct {
	country string
	year    int
}

// NewDataset normalizes and indexes records. Negative values clamp to
// zero, duplicate (country, year) rows collapse with the last one
// winning, and rows are ordered by country then year.
func NewDataset(records []models.Record) *Dataset {
	index := make(map[recordKey]int, len(records))
	rows := make([]models.Record, 0, len(records))
	for _, r := range records {
		clampRecord(&r)
		key := recordKey{r.Country, r.Year}
		if i, ok := index[key]; ok {
			rows[i] = r
			continue
		}
		index[key] = len(rows)
		rows = append(rows, r)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Year < rows[j].Year
	})

	countrySet := make(map[string]bool)
	yearSet := make(map[int]bool)
	for i, r := range rows {
		index[recordKey{r.Country, r.Year}] = i
		countrySet[r.Country] = true
		yearSet[r.Year] = true
	}

	countries := make([]string, 0, len(countrySet))
	for c := range countrySet {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	return &Dataset{
		records:   rows,
		index:     index,
		countries: countries,
		years:     years,
	}
}

// Len returns the number of records.
func (ds *Dataset) Len() int { return len(ds.records) }

// Records returns the ordered records. Callers must not mutate the
// returned slice.
func (ds *Dataset) Records() []models.Record { return ds.records }

// Countries returns the sorted unique country names.
func (ds *Dataset) Countries() []string { return ds.countries }

// Years returns the sorted unique years.
func (ds *Dataset) Years() []int { return ds.years }

// MinYear returns the earliest year, or 0 for an empty dataset.
func (ds *Dataset) MinYear() int {
	if len(ds.years) == 0 {
		return 0
	}
	return ds.years[0]
}

// MaxYear returns the latest year, or 0 for an empty dataset.
func (ds *Dataset) MaxYear() int {
	if len(ds.years) == 0 {
		return 0
	}
	return ds.years[len(ds.years)-1]
}

// At looks up the record for one (country, year) pair.
func (ds *Dataset) At(country string, year int) (models.Record, bool) {
	i, ok := ds.index[recordKey{country, year}]
	if !ok {
		return models.Record{}, false
	}
	return ds.records[i], true
}

func clampRecord(r *models.Record) {
	for _, f := range []*float64{
		&r.Coal, &r.Gas, &r.Oil, &r.Nuclear,
		&r.Hydro, &r.Wind, &r.Solar, &r.OtherRenewables,
		&r.PrimaryEnergy, &r.Population,
	} {
		if *f < 0 {
			*f = 0
		}
	}
}
