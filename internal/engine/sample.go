package engine

import (
	"math/rand"

	"energydash/internal/models"
)

var sampleCountries = []string{
	"United States", "China", "India", "Germany", "Japan",
	"United Kingdom", "France", "Brazil", "Canada", "Russia",
}

const (
	sampleFirstYear = 2000
	sampleLastYear  = 2022
	sampleSeed      = 42
)

// SampleDataset synthesizes a placeholder dataset so the dashboard
// always has data to render. The generator is seeded, so repeated calls
// return identical values.
func SampleDataset() *Dataset {
	rng := rand.New(rand.NewSource(sampleSeed))

	var records []models.Record
	for _, country := range sampleCountries {
		base := uniform(rng, 50, 500)
		growth := uniform(rng, -0.02, 0.05)

		level := base
		for year := sampleFirstYear; year <= sampleLastYear; year++ {
			consumption := level * uniform(rng, 0.9, 1.1)
			records = append(records, models.Record{
				Country:         country,
				Year:            year,
				PrimaryEnergy:   consumption,
				Coal:            consumption * 0.3 * uniform(rng, 0.8, 1.2),
				Gas:             consumption * 0.25 * uniform(rng, 0.8, 1.2),
				Oil:             consumption * 0.3 * uniform(rng, 0.8, 1.2),
				Nuclear:         consumption * 0.1 * uniform(rng, 0.5, 1.5),
				Hydro:           consumption * 0.05 * uniform(rng, 0.5, 2.0),
				Wind:            consumption * 0.03 * uniform(rng, 0, 3.0),
				Solar:           consumption * 0.02 * uniform(rng, 0, 4.0),
				OtherRenewables: consumption * 0.02 * uniform(rng, 0.5, 2.0),
				Population:      uniform(rng, 1e6, 1e9),
			})
			level *= 1 + growth
		}
	}
	return NewDataset(records)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
