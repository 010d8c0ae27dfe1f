package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"energydash/internal/models"
)

// ErrDataUnavailable reports that the source file is missing or
// unreadable. Callers recover by falling back to the sample dataset.
var ErrDataUnavailable = errors.New("energy data unavailable")

// FillPolicy controls how an absent source value is treated during
// normalization.
type FillPolicy string

const (
	// FillZero treats an unreported source as zero consumption.
	FillZero FillPolicy = "zero"
	// FillForward carries each country's previous year forward.
	FillForward FillPolicy = "forward"
)

// sourceIndex positions within a parsed row, matching models.SourceNames.
const (
	colCoal = iota
	colGas
	colOil
	colNuclear
	colHydro
	colWind
	colSolar
	colOther
	numSources
)

type parsedRow struct {
	rec     models.Record
	missing [numSources]bool
}

// Load parses a delimited energy file into a Dataset. A missing or
// unreadable path yields ErrDataUnavailable. Malformed rows are skipped
// and unparsable numeric cells are zero-filled, never fatal.
func Load(path string, fill FillPolicy) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDataUnavailable, err)
	}

	cols := mapColumns(header)
	if _, ok := cols["country"]; !ok {
		return nil, fmt.Errorf("%w: no country column", ErrDataUnavailable)
	}
	if _, ok := cols["year"]; !ok {
		return nil, fmt.Errorf("%w: no year column", ErrDataUnavailable)
	}

	var rows []parsedRow
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line: skip, keep loading.
			continue
		}
		row, ok := parseRow(fields, cols)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	if fill == FillForward {
		forwardFill(rows)
	}

	records := make([]models.Record, len(rows))
	for i, row := range rows {
		records[i] = row.rec
	}
	return NewDataset(records), nil
}

// LoadOrSample loads the file at path, falling back to the deterministic
// sample dataset when no usable source exists. It never fails.
func LoadOrSample(path string, fill FillPolicy, logger *slog.Logger) *Dataset {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ds, err := Load(path, fill)
	if err != nil {
		logger.Warn("dataset unavailable, using sample data", "path", path, "error", err)
		return SampleDataset()
	}
	logger.Info("dataset loaded", "path", path, "records", ds.Len())
	return ds
}

// mapColumns maps canonical column names to their position in the header.
// The first occurrence of a canonical name wins.
func mapColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := canonicalColumn(h)
		if name == "" {
			continue
		}
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	return cols
}

// canonicalColumn normalizes a header cell to the canonical schema name,
// or "" for columns the loader does not use. Variants differ in case,
// spacing and the "_consumption" suffix.
func canonicalColumn(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	h = strings.TrimSuffix(h, "_consumption")

	switch h {
	case "country":
		return "country"
	case "year":
		return "year"
	case "coal":
		return "coal"
	case "gas", "natural_gas":
		return "gas"
	case "oil":
		return "oil"
	case "nuclear":
		return "nuclear"
	case "hydro":
		return "hydro"
	case "wind":
		return "wind"
	case "solar":
		return "solar"
	case "other_renewable", "other_renewables", "other":
		return "other_renewables"
	case "primary_energy", "primary", "total_energy":
		return "primary_energy"
	case "population":
		return "population"
	}
	return ""
}

func parseRow(fields []string, cols map[string]int) (parsedRow, bool) {
	country := cell(fields, cols, "country")
	if country == "" {
		return parsedRow{}, false
	}
	year, err := strconv.Atoi(cell(fields, cols, "year"))
	if err != nil || year <= 0 {
		return parsedRow{}, false
	}

	row := parsedRow{rec: models.Record{Country: country, Year: year}}
	targets := [numSources]*float64{
		colCoal: &row.rec.Coal, colGas: &row.rec.Gas, colOil: &row.rec.Oil,
		colNuclear: &row.rec.Nuclear, colHydro: &row.rec.Hydro,
		colWind: &row.rec.Wind, colSolar: &row.rec.Solar,
		colOther: &row.rec.OtherRenewables,
	}
	for i, name := range models.SourceNames {
		v, ok := numericCell(fields, cols, name)
		*targets[i] = v
		row.missing[i] = !ok
	}
	row.rec.PrimaryEnergy, _ = numericCell(fields, cols, "primary_energy")
	row.rec.Population, _ = numericCell(fields, cols, "population")
	return row, true
}

func cell(fields []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// numericCell parses one numeric field. An absent column, empty cell or
// unparsable value reads as (0, false).
func numericCell(fields []string, cols map[string]int, name string) (float64, bool) {
	s := cell(fields, cols, name)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// forwardFill replaces absent source values with the country's most
// recent reported value, in year order.
func forwardFill(rows []parsedRow) {
	byCountry := make(map[string][]int)
	for i, row := range rows {
		byCountry[row.rec.Country] = append(byCountry[row.rec.Country], i)
	}
	for _, idxs := range byCountry {
		sort.Slice(idxs, func(a, b int) bool {
			return rows[idxs[a]].rec.Year < rows[idxs[b]].rec.Year
		})
		var last [numSources]float64
		for _, i := range idxs {
			row := &rows[i]
			targets := [numSources]*float64{
				colCoal: &row.rec.Coal, colGas: &row.rec.Gas, colOil: &row.rec.Oil,
				colNuclear: &row.rec.Nuclear, colHydro: &row.rec.Hydro,
				colWind: &row.rec.Wind, colSolar: &row.rec.Solar,
				colOther: &row.rec.OtherRenewables,
			}
			for s := 0; s < numSources; s++ {
				if row.missing[s] {
					*targets[s] = last[s]
				} else {
					last[s] = *targets[s]
				}
			}
		}
	}
}
