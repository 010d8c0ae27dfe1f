package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDatasetDeterministic(t *testing.T) {
	a := SampleDataset()
	b := SampleDataset()
	assert.Equal(t, a.Records(), b.Records())
}

func TestSampleDatasetShape(t *testing.T) {
	ds := SampleDataset()

	years := sampleLastYear - sampleFirstYear + 1
	require.Equal(t, len(sampleCountries)*years, ds.Len())
	assert.Len(t, ds.Countries(), len(sampleCountries))
	assert.Equal(t, sampleFirstYear, ds.MinYear())
	assert.Equal(t, sampleLastYear, ds.MaxYear())

	for _, r := range ds.Records() {
		assert.GreaterOrEqual(t, r.Coal, 0.0)
		assert.GreaterOrEqual(t, r.Wind, 0.0)
		assert.Greater(t, r.PrimaryEnergy, 0.0)
		assert.Greater(t, r.Population, 0.0)
	}
}
