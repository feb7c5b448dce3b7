package utils

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"Alpha", "Beta"}, series.String, "App"),
		series.New([]int{100, 5000}, series.Int, "Installs"),
		series.New([]float64{0, 1.99}, series.Float, "Price"),
	)
}

func TestColumns(t *testing.T) {
	df := sampleFrame()
	assert.True(t, HasColumn(df, "Installs"))
	assert.False(t, HasColumn(df, "Rating"))
	assert.Equal(t, []string{"Rating", "Genres"}, MissingColumns(df, []string{"App", "Rating", "Genres"}))
	assert.Nil(t, MissingColumns(df, []string{"App"}))
	assert.True(t, Contains([]int{1, 2, 3}, 2))
}

func TestWriteSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, WriteSheet(f, "Cleaned", sampleFrame()))

	rows, err := f.GetRows("Cleaned")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"App", "Installs", "Price"}, rows[0])
	assert.Equal(t, []string{"Beta", "5000", "1.99"}, rows[2])
}
