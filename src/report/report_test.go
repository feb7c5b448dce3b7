package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"AppMarketAnalysis/src/config"
	"AppMarketAnalysis/src/datasource/file"
	"AppMarketAnalysis/src/models"
	"AppMarketAnalysis/src/processor"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSummary(t *testing.T) *processor.Summary {
	t.Helper()
	raw, err := file.ReadCSV(filepath.Join("..", "processor", "testdata", "apps_sample.csv"))
	require.NoError(t, err)

	cfg := config.Default()
	res, err := processor.NewPipeline(cfg, nil).Run(raw)
	require.NoError(t, err)

	s, err := processor.Summarize(res, processor.OptionsFromConfig(cfg))
	require.NoError(t, err)
	return s
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, sampleSummary(t))
	out := buf.String()

	assert.Contains(t, out, "APP MARKET ANALYSIS")
	assert.Contains(t, out, "Cleaned listings       : 8")
	assert.Contains(t, out, "Top grossing apps")
	assert.Contains(t, out, "$69,900,000.00")
	assert.Contains(t, out, "1,510,000,000")
	assert.Contains(t, out, "Median paid price: $2.49")
	assert.Contains(t, out, "Art & Design")
}

func TestPrintEmpty(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, &processor.Summary{})
	assert.Contains(t, buf.String(), "No data")
}

func TestPrintMultibyteNames(t *testing.T) {
	name := strings.Repeat("한국어앱", 10)
	require.Equal(t, 40, utf8.RuneCountInString(name))

	s := &processor.Summary{
		TopCategories: []processor.Count{{Label: name, N: 3}},
		Rankings: []processor.RankedTable{{
			Title:  "Top rated apps",
			Column: models.ColRating,
			Table: dataframe.New(
				series.New([]string{name}, series.String, models.ColApp),
				series.New([]string{name}, series.String, models.ColCategory),
				series.New([]float64{4.5}, series.Float, models.ColRating),
			),
		}},
	}

	var buf bytes.Buffer
	Print(&buf, s)
	assert.True(t, utf8.Valid(buf.Bytes()))
	assert.Contains(t, buf.String(), strings.Repeat("한국어앱", 8)+"한국어...")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmn", 10))
	assert.Equal(t, "가나다...", truncate("가나다라마바사", 6))
}

func TestSaveWorkbook(t *testing.T) {
	s := sampleSummary(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, SaveWorkbook(path, s))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, name := range []string{
		SheetCleaned, SheetCategories, SheetConcentration, SheetContentRating, SheetGenres,
		SheetFreeVsPaid, SheetInstalls, SheetDescribe, SheetInstallsByType, SheetPaidRevenue,
		SheetPaidPrice, "Top grossing apps",
	} {
		assert.Contains(t, sheets, name)
	}
	assert.NotContains(t, sheets, defaultSheet)

	rows, err := f.GetRows(SheetCleaned)
	require.NoError(t, err)
	assert.Len(t, rows, 9)

	rows, err = f.GetRows(SheetCategories)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Category", "Apps"}, rows[0])
	assert.Equal(t, []string{"GAME", "3"}, rows[1])

	rows, err = f.GetRows(SheetContentRating)
	require.NoError(t, err)
	assert.Equal(t, []string{"Everyone", "5"}, rows[1])
}
