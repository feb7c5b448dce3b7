package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"AppMarketAnalysis/src/config"
	"AppMarketAnalysis/src/models"
	"AppMarketAnalysis/src/render"
	"AppMarketAnalysis/src/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T, input string) (*analyzer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.InputPath = input
	cfg.ChartDir = filepath.Join(dir, "charts")
	cfg.ReportPath = filepath.Join(dir, "report.xlsx")

	logger, err := storage.NewLogger(filepath.Join(dir, "app.log"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	var out bytes.Buffer
	return &analyzer{cfg: cfg, logger: logger, out: &out}, &out
}

func TestAnalyzeSample(t *testing.T) {
	a, out := newTestAnalyzer(t, filepath.Join("src", "processor", "testdata", "apps_sample.csv"))

	require.NoError(t, a.analyze())
	assert.Contains(t, out.String(), "Cleaned listings       : 8")

	_, err := os.Stat(a.cfg.ReportPath)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(a.cfg.ChartDir, render.ContentRatingFile))
	assert.NoError(t, err)
}

func TestAnalyzeMissingInput(t *testing.T) {
	a, _ := newTestAnalyzer(t, filepath.Join(t.TempDir(), "missing.csv"))

	err := a.analyze()
	require.Error(t, err)
	assert.Equal(t, exitInput, exitCode(err))
}

func TestAnalyzeMalformedNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.csv")
	body := "App,Category,Rating,Reviews,Size_MBs,Installs,Type,Price,Content_Rating,Genres,Last_Updated,Android_Ver\n" +
		"Bad,TOOLS,4.2,10,3.0,Free,Free,0,Everyone,Tools,2018,4.0\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	a, _ := newTestAnalyzer(t, path)
	err := a.analyze()
	require.Error(t, err)
	assert.Equal(t, exitIntegrity, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitInput, exitCode(fmt.Errorf("load: %w", models.ErrInput)))
	assert.Equal(t, exitIntegrity, exitCode(&models.ParseError{Column: models.ColPrice}))
	assert.Equal(t, exitFailure, exitCode(fmt.Errorf("boom")))
}
