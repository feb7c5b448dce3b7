// workbook.go
package report

import (
	"fmt"

	"AppMarketAnalysis/src/models"
	"AppMarketAnalysis/src/processor"
	"AppMarketAnalysis/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// 工作表名(不超过31个字符)
const (
	SheetCleaned          = "Cleaned"
	SheetCategories       = "Categories"
	SheetConcentration    = "Category installs"
	SheetContentRating    = "Content rating"
	SheetGenres           = "Genres"
	SheetFreeVsPaid       = "Free vs paid"
	SheetInstalls         = "Installs distribution"
	SheetDescribe         = "Describe"
	SheetInstallsByType   = "Installs by type"
	SheetPaidRevenue      = "Paid revenue by category"
	SheetPaidPrice        = "Paid price by category"
	defaultSheet          = "Sheet1"
	contentRatingChartPos = "D2"
)

// SaveWorkbook 导出清洗表和各个视图，每个视图一个工作表
func SaveWorkbook(path string, s *processor.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetCleaned); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sheets := []struct {
		name string
		df   dataframe.DataFrame
	}{
		{SheetCleaned, s.Cleaned},
		{SheetCategories, countsFrame(models.ColCategory, s.Categories)},
		{SheetConcentration, categoryStatsFrame(s.Concentration)},
		{SheetContentRating, countsFrame(models.ColContentRating, s.ContentRatings)},
		{SheetGenres, countsFrame(models.ColGenre, s.GenreCounts)},
		{SheetFreeVsPaid, freeVsPaidFrame(s.FreeVsPaid)},
		{SheetInstalls, installsFrame(s.Installs)},
		{SheetDescribe, describeFrame(s.Descriptions)},
		{SheetInstallsByType, boxFrame(models.ColType, s.InstallsByType)},
		{SheetPaidRevenue, boxFrame(models.ColCategory, s.PaidRevenueByCategory)},
		{SheetPaidPrice, boxFrame(models.ColCategory, s.PaidPriceByCategory)},
	}
	for _, ranked := range s.Rankings {
		sheets = append(sheets, struct {
			name string
			df   dataframe.DataFrame
		}{ranked.Title, ranked.Table})
	}

	for _, sh := range sheets {
		if sh.df.Err != nil {
			return fmt.Errorf("build sheet %s: %w", sh.name, sh.df.Err)
		}
		if err := utils.WriteSheet(f, sh.name, sh.df); err != nil {
			return err
		}
	}

	if n := len(s.ContentRatings); n > 0 {
		if err := addContentRatingPie(f, n); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func addContentRatingPie(f *excelize.File, n int) error {
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$2:$%s$%d", SheetContentRating, col, col, n+1)
	}
	err := f.AddChart(SheetContentRating, contentRatingChartPos, &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", SheetContentRating),
			Categories: ref("A"),
			Values:     ref("B"),
		}},
		Title: []excelize.RichTextRun{{Text: "Content rating"}},
	})
	if err != nil {
		return fmt.Errorf("add content rating chart: %w", err)
	}
	return nil
}

func countsFrame(label string, counts []processor.Count) dataframe.DataFrame {
	labels := make([]string, len(counts))
	ns := make([]int, len(counts))
	for i, c := range counts {
		labels[i], ns[i] = c.Label, c.N
	}
	return dataframe.New(
		series.New(labels, series.String, label),
		series.New(ns, series.Int, "Apps"),
	)
}

func categoryStatsFrame(stats []processor.CategoryStats) dataframe.DataFrame {
	categories := make([]string, len(stats))
	apps := make([]int, len(stats))
	installs := make([]int, len(stats))
	for i, s := range stats {
		categories[i], apps[i], installs[i] = s.Category, s.Apps, s.Installs
	}
	return dataframe.New(
		series.New(categories, series.String, models.ColCategory),
		series.New(apps, series.Int, "Apps"),
		series.New(installs, series.Int, models.ColInstalls),
	)
}

func freeVsPaidFrame(rows []processor.CategoryTypeCount) dataframe.DataFrame {
	categories := make([]string, len(rows))
	types := make([]string, len(rows))
	apps := make([]int, len(rows))
	for i, r := range rows {
		categories[i], types[i], apps[i] = r.Category, r.Type, r.Apps
	}
	return dataframe.New(
		series.New(categories, series.String, models.ColCategory),
		series.New(types, series.String, models.ColType),
		series.New(apps, series.Int, "Apps"),
	)
}

func installsFrame(buckets []processor.InstallBucket) dataframe.DataFrame {
	installs := make([]int, len(buckets))
	apps := make([]int, len(buckets))
	for i, b := range buckets {
		installs[i], apps[i] = b.Installs, b.Apps
	}
	return dataframe.New(
		series.New(installs, series.Int, models.ColInstalls),
		series.New(apps, series.Int, "Apps"),
	)
}

func describeFrame(ds []processor.Description) dataframe.DataFrame {
	columns := make([]string, len(ds))
	counts := make([]int, len(ds))
	stats := make([][]float64, 7)
	for i := range stats {
		stats[i] = make([]float64, len(ds))
	}
	for i, d := range ds {
		columns[i], counts[i] = d.Column, d.Count
		for j, v := range []float64{d.Mean, d.Std, d.Min, d.Q25, d.Median, d.Q75, d.Max} {
			stats[j][i] = v
		}
	}

	se := []series.Series{
		series.New(columns, series.String, "Column"),
		series.New(counts, series.Int, "count"),
	}
	for j, name := range []string{"mean", "std", "min", "25%", "50%", "75%", "max"} {
		se = append(se, series.New(stats[j], series.Float, name))
	}
	return dataframe.New(se...)
}

func boxFrame(group string, boxes []processor.BoxStat) dataframe.DataFrame {
	groups := make([]string, len(boxes))
	ns := make([]int, len(boxes))
	stats := make([][]float64, 5)
	for i := range stats {
		stats[i] = make([]float64, len(boxes))
	}
	for i, b := range boxes {
		groups[i], ns[i] = b.Group, b.N
		for j, v := range []float64{b.Min, b.Q1, b.Median, b.Q3, b.Max} {
			stats[j][i] = v
		}
	}

	se := []series.Series{
		series.New(groups, series.String, group),
		series.New(ns, series.Int, "N"),
	}
	for j, name := range []string{"Min", "Q1", "Median", "Q3", "Max"} {
		se = append(se, series.New(stats[j], series.Float, name))
	}
	return dataframe.New(se...)
}
