package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleData(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		width int
		want  []float64
	}{
		{"short data passes through", []float64{1, 2, 3}, 10, []float64{1, 2, 3}},
		{"exact width passes through", []float64{1, 2}, 2, []float64{1, 2}},
		{"buckets are averaged", []float64{1, 3, 5, 7}, 2, []float64{2, 6}},
		{"uneven buckets", []float64{1, 2, 3, 4, 5, 6}, 4, []float64{1, 2.5, 4, 5.5}},
		{"empty", nil, 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resampleData(tt.data, tt.width))
		})
	}
}

func TestNiceRangeCoversData(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
	}{
		{"plain", 0, 87},
		{"negative span", -3.2, 4.7},
		{"tiny values", 0.001, 0.009},
		{"inverted input", 10, -10},
		{"single nonzero value", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := niceRange(tt.lo, tt.hi)
			dLo, dHi := tt.lo, tt.hi
			if dHi < dLo {
				dLo, dHi = dHi, dLo
			}
			require.LessOrEqual(t, lo, dLo, "range must contain the data")
			require.GreaterOrEqual(t, hi, dHi)
			require.Greater(t, hi, lo)
		})
	}
}

func TestNiceRangeAllZero(t *testing.T) {
	lo, hi := niceRange(0, 0)
	require.Less(t, lo, 0.0)
	require.Greater(t, hi, 0.0)
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{0.7, 1},
		{1.5, 2},
		{3, 5},
		{7, 10},
		{0.03, 0.05},
		{250, 500},
		{0, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, niceStep(tt.raw), tt.want*1e-9)
	}
}

func TestDataBounds(t *testing.T) {
	lo, hi, ok := dataBounds([][]float64{{3, -1, 2}, {7, 0}})
	require.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)

	_, _, ok = dataBounds([][]float64{{}, nil})
	assert.False(t, ok)
}

func TestClampSeries(t *testing.T) {
	got := clampSeries([][]float64{{-5, 0, 5}}, -1, 1)
	assert.Equal(t, [][]float64{{-1, 0, 1}}, got)
}

func TestSeriesStats(t *testing.T) {
	last, mn, mx, mean := seriesStats([]float64{4, -2, 6, 0})
	assert.Equal(t, 0.0, last)
	assert.Equal(t, -2.0, mn)
	assert.Equal(t, 6.0, mx)
	assert.Equal(t, 2.0, mean)

	last, mn, mx, mean = seriesStats(nil)
	assert.Zero(t, last)
	assert.Zero(t, mn)
	assert.Zero(t, mx)
	assert.Zero(t, mean)
}
