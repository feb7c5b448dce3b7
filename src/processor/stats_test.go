package processor

import (
	"math"
	"testing"

	"AppMarketAnalysis/src/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	df := runSample(t).Table

	d, err := Describe(df, models.ColRating)
	require.NoError(t, err)
	assert.Equal(t, models.ColRating, d.Column)
	assert.Equal(t, 8, d.Count)
	assert.InDelta(t, 4.3, d.Mean, 1e-9)
	assert.InDelta(t, 3.9, d.Min, 1e-9)
	assert.InDelta(t, 4.6, d.Max, 1e-9)
	assert.True(t, d.Min <= d.Q25 && d.Q25 <= d.Median && d.Median <= d.Q75 && d.Q75 <= d.Max)
	assert.Greater(t, d.Std, 0.0)

	_, err = Describe(df, models.ColCategory)
	assert.Error(t, err)
}

func TestDescribeOddSample(t *testing.T) {
	df := dataframe.New(series.New([]float64{3, 1, 2}, series.Float, "x"))

	d, err := Describe(df, "x")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d.Median, 1e-9)
	assert.InDelta(t, 2.0, d.Mean, 1e-9)
	assert.InDelta(t, 1.0, d.Std, 1e-9)
	assert.Equal(t, 1.0, d.Min)
	assert.Equal(t, 3.0, d.Max)
}

func TestDescribeEmpty(t *testing.T) {
	df := dataframe.New(series.New([]float64{}, series.Float, "x"))

	d, err := Describe(df, "x")
	require.NoError(t, err)
	assert.Zero(t, d.Count)
	assert.True(t, math.IsNaN(d.Median))
}

func TestMedianPaidPrice(t *testing.T) {
	df := runSample(t).Table

	median, err := MedianPaidPrice(df)
	require.NoError(t, err)
	// 0.99 1.99 2.99 6.99
	assert.InDelta(t, 2.49, median, 1e-9)

	free := df.Filter(dataframe.F{Colname: models.ColType, Comparator: series.Eq, Comparando: models.TypeFree})
	median, err = MedianPaidPrice(free)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(median))
}

func TestBoxStats(t *testing.T) {
	df := runSample(t).Table

	boxes, err := BoxStats(df, models.ColType, models.ColInstalls)
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	free, paid := boxes[0], boxes[1]
	assert.Equal(t, models.TypeFree, free.Group)
	assert.Equal(t, 4, free.N)
	assert.Equal(t, 10000.0, free.Min)
	assert.Equal(t, 1e9, free.Max)
	assert.InDelta(t, 250250000.0, free.Median, 1e-6)

	assert.Equal(t, models.TypePaid, paid.Group)
	assert.InDelta(t, 5500000.0, paid.Median, 1e-6)
	assert.Equal(t, 1e7, paid.Max)

	byCategory, err := BoxStats(PaidApps(df), models.ColCategory, models.ColPrice)
	require.NoError(t, err)
	require.Len(t, byCategory, 3)
	assert.Equal(t, "FAMILY", byCategory[0].Group)
	assert.InDelta(t, 4.99, byCategory[0].Median, 1e-9)

	_, err = BoxStats(df, models.ColType, models.ColApp)
	assert.Error(t, err)
}
