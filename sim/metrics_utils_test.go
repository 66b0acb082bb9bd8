package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDistribution_Empty_ZeroValue(t *testing.T) {
	assert.Equal(t, Distribution{}, NewDistribution(nil))
}

func TestNewDistribution_EmpiricalPercentiles(t *testing.T) {
	// GIVEN unsorted values 1..5
	values := []float64{4, 1, 5, 3, 2}

	// WHEN summarized
	d := NewDistribution(values)

	// THEN percentiles are observed values and the input is left untouched
	assert.Equal(t, 3.0, d.Mean)
	assert.Equal(t, 3.0, d.P50)
	assert.Equal(t, 5.0, d.P95)
	assert.Equal(t, 5.0, d.P99)
	assert.Equal(t, 1.0, d.Min)
	assert.Equal(t, 5.0, d.Max)
	assert.Equal(t, 5, d.Count)
	assert.Equal(t, []float64{4, 1, 5, 3, 2}, values)
}

func TestNewDistribution_SingleValue(t *testing.T) {
	d := NewDistribution([]float64{7})
	assert.Equal(t, Distribution{Mean: 7, P50: 7, P95: 7, P99: 7, Min: 7, Max: 7, Count: 1}, d)
}
