package processor

import (
	"fmt"

	"AppMarketAnalysis/src/config"
	"AppMarketAnalysis/src/models"

	"github.com/go-gota/gota/dataframe"
)

// Options 各排行榜取前几名
type Options struct {
	TopN           int
	TopGrossingN   int
	TopCategoriesN int
	TopGenresN     int
}

// OptionsFromConfig 从配置中取排行参数
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TopN:           cfg.TopN,
		TopGrossingN:   cfg.TopGrossingN,
		TopCategoriesN: cfg.TopCategoriesN,
		TopGenresN:     cfg.TopGenresN,
	}
}

// RankedTable 一张排行表及其排序列
type RankedTable struct {
	Title  string
	Column string
	Table  dataframe.DataFrame
}

// Summary 一次分析得到的全部视图
type Summary struct {
	Report  CleaningReport
	Cleaned dataframe.DataFrame
	Genres  dataframe.DataFrame // 题材展开表

	Rankings []RankedTable

	UniqueCategories int
	Categories       []Count
	TopCategories    []Count
	CategoryInstalls []CategoryStats // 安装量升序
	Concentration    []CategoryStats // 安装量降序

	ContentRatings []Count
	Types          []Count
	FreeVsPaid     []CategoryTypeCount
	Installs       []InstallBucket

	UniqueGenres int
	GenreCounts  []Count
	TopGenres    []Count

	Descriptions    []Description
	MedianPaidPrice float64

	InstallsByType        []BoxStat
	PaidRevenueByCategory []BoxStat
	PaidPriceByCategory   []BoxStat
}

var rankings = []struct {
	title  string
	column string
	gross  bool
}{
	{"Top rated apps", models.ColRating, false},
	{"Largest apps", models.ColSizeMBs, false},
	{"Most reviewed apps", models.ColReviews, false},
	{"Most expensive apps", models.ColPrice, false},
	{"Top grossing apps", models.ColRevenueEstimate, true},
}

var describedColumns = []string{
	models.ColRating, models.ColReviews, models.ColSizeMBs,
	models.ColInstalls, models.ColPrice, models.ColRevenueEstimate,
}

// Summarize 基于清洗结果计算全部视图，不修改清洗表
func Summarize(res Result, opts Options) (*Summary, error) {
	df := res.Table
	s := &Summary{
		Report:  res.Report,
		Cleaned: df,
		Genres:  ExplodeGenres(df),
	}

	for _, r := range rankings {
		n := opts.TopN
		if r.gross {
			n = opts.TopGrossingN
		}
		top, err := TopN(df, r.column, n)
		if err != nil {
			return nil, err
		}
		s.Rankings = append(s.Rankings, RankedTable{Title: r.title, Column: r.column, Table: top})
	}

	s.Categories = CategoryCount(df)
	s.UniqueCategories = len(s.Categories)
	s.TopCategories = head(s.Categories, opts.TopCategoriesN)

	var err error
	if s.CategoryInstalls, err = CategoryInstalls(df); err != nil {
		return nil, err
	}
	if s.Concentration, err = CategoryConcentration(df); err != nil {
		return nil, err
	}

	s.ContentRatings = ContentRatingCounts(df)
	s.Types = TypeCounts(df)
	s.FreeVsPaid = FreeVsPaid(df)
	if s.Installs, err = InstallsDistribution(df); err != nil {
		return nil, err
	}

	s.UniqueGenres = UniqueGenres(df)
	s.GenreCounts = GenreCounts(s.Genres)
	s.TopGenres = head(s.GenreCounts, opts.TopGenresN)

	for _, col := range describedColumns {
		d, err := Describe(df, col)
		if err != nil {
			return nil, err
		}
		s.Descriptions = append(s.Descriptions, d)
	}
	if s.MedianPaidPrice, err = MedianPaidPrice(df); err != nil {
		return nil, err
	}

	if s.InstallsByType, err = BoxStats(df, models.ColType, models.ColInstalls); err != nil {
		return nil, err
	}
	paid := PaidApps(df)
	if s.PaidRevenueByCategory, err = BoxStats(paid, models.ColCategory, models.ColRevenueEstimate); err != nil {
		return nil, err
	}
	if s.PaidPriceByCategory, err = BoxStats(paid, models.ColCategory, models.ColPrice); err != nil {
		return nil, fmt.Errorf("paid price by category: %w", err)
	}
	return s, nil
}
