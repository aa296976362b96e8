package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademuri/discogs-eda/internal/release"
)

func TestCorrelation(t *testing.T) {
	releases := []release.Release{
		{ReleaseYear: 1990, Have: release.Known(1), Want: release.Known(2), MeanRating: release.Known(4)},
		{ReleaseYear: 1991, Have: release.Known(2), Want: release.Known(4), MeanRating: release.Known(4)},
		{ReleaseYear: 1992, Have: release.Known(3), Want: release.Known(6), MeanRating: release.Known(4)},
		{ReleaseYear: 1993, Have: release.Known(4)},
	}
	fields := []release.Field{release.Have, release.Want, release.MeanRating, release.ReleaseYear}
	m, err := Correlation(Rows(releases), fields)
	require.NoError(t, err)

	assert.True(t, m.Defined[0][1])
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-9)
	assert.InDelta(t, 1.0, m.Values[1][0], 1e-9)
	assert.InDelta(t, 1.0, m.Values[0][3], 1e-9)

	// Constant ratings have no variance.
	assert.False(t, m.Defined[0][2])
	assert.False(t, m.Defined[2][2])

	_, err = Correlation(Rows(releases), []release.Field{release.Label})
	assert.Error(t, err)
	_, err = Correlation(nil, fields)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestDistribution(t *testing.T) {
	var releases []release.Release
	for i := 0; i <= 10; i++ {
		releases = append(releases, release.Release{Want: release.Known(float64(i))})
	}
	releases = append(releases, release.Release{})

	h, err := Distribution(Rows(releases), release.Want, 5)
	require.NoError(t, err)
	assert.Equal(t, 11, h.Count)
	assert.Equal(t, 1, h.Missing)
	require.Len(t, h.Bins, 5)

	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	assert.Equal(t, 11, total)
	assert.Equal(t, 0.0, h.Bins[0].Low)
	assert.Equal(t, 10.0, h.Bins[4].High)
	assert.Equal(t, 3, h.Bins[4].Count)

	assert.Equal(t, 0.0, h.Box.Min)
	assert.Equal(t, 5.0, h.Box.Median)
	assert.Equal(t, 10.0, h.Box.Max)
	assert.Less(t, h.Box.Q1, h.Box.Median)
	assert.Greater(t, h.Box.Q3, h.Box.Median)
}

func TestDistributionSingleValue(t *testing.T) {
	releases := []release.Release{{Have: release.Known(7)}, {Have: release.Known(7)}}
	h, err := Distribution(Rows(releases), release.Have, 30)
	require.NoError(t, err)
	require.Len(t, h.Bins, 1)
	assert.Equal(t, 2, h.Bins[0].Count)
	assert.Equal(t, 7.0, h.Box.Q1)
}

func TestDistributionOneValue(t *testing.T) {
	h, err := Distribution(Rows([]release.Release{{Have: release.Known(7)}}), release.Have, 30)
	require.NoError(t, err)
	require.Len(t, h.Bins, 1)
	assert.False(t, math.IsNaN(h.Box.Q1))
	assert.False(t, math.IsNaN(h.Box.Q3))
	assert.Equal(t, BoxSummary{Min: 7, Q1: 7, Median: 7, Q3: 7, Max: 7}, h.Box)
}

func TestDistributionErrors(t *testing.T) {
	_, err := Distribution(Rows([]release.Release{{}}), release.Have, 30)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Distribution(nil, release.Genre, 30)
	assert.Error(t, err)

	_, err = Distribution(nil, release.Have, 0)
	assert.Error(t, err)
}

func TestExtremes(t *testing.T) {
	releases := []release.Release{
		{ID: "a", LowestPrice: release.Known(2), HighestPrice: release.Known(20)},
		{ID: "b", LowestPrice: release.Known(0), HighestPrice: release.Known(550)},
		{ID: "c", LowestPrice: release.Known(0)},
		{ID: "d"},
	}
	e, err := Extremes(Rows(releases))
	require.NoError(t, err)
	assert.Equal(t, "b", e.Cheapest.ID)
	assert.Equal(t, "b", e.MostExpensive.ID)

	_, err = Extremes(Rows(releases[3:]))
	assert.ErrorIs(t, err, ErrEmptyInput)
}
