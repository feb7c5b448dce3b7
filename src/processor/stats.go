package processor

import (
	"fmt"
	"math"
	"sort"

	"AppMarketAnalysis/src/models"

	"github.com/aclements/go-moremath/stats"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Description 数值列的描述统计
type Description struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// BoxStat 一个分组的五数概括
type BoxStat struct {
	Group  string
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// numericValues 取数值列，字符串列返回错误
func numericValues(df dataframe.DataFrame, col string) ([]float64, error) {
	s := df.Col(col)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Type() == series.String {
		return nil, fmt.Errorf("column %s is not numeric", col)
	}
	return s.Float(), nil
}

func sortedSample(xs []float64) *stats.Sample {
	return stats.Sample{Xs: xs}.Copy().Sort()
}

// Describe 计算 count/mean/std/min/25%/50%/75%/max；空表各项为NaN
func Describe(df dataframe.DataFrame, col string) (Description, error) {
	xs, err := numericValues(df, col)
	if err != nil {
		return Description{}, fmt.Errorf("describe %s: %w", col, err)
	}

	d := Description{Column: col, Count: len(xs)}
	if len(xs) == 0 {
		nan := math.NaN()
		d.Mean, d.Std, d.Min, d.Q25, d.Median, d.Q75, d.Max = nan, nan, nan, nan, nan, nan, nan
		return d, nil
	}

	s := sortedSample(xs)
	d.Mean = s.Mean()
	d.Std = s.StdDev()
	d.Min, d.Max = s.Bounds()
	d.Q25 = s.Quantile(0.25)
	d.Median = s.Quantile(0.5)
	d.Q75 = s.Quantile(0.75)
	return d, nil
}

// MedianPaidPrice 付费应用价格中位数，没有付费应用时返回NaN
func MedianPaidPrice(df dataframe.DataFrame) (float64, error) {
	paid := PaidApps(df)
	if paid.Nrow() == 0 {
		return math.NaN(), nil
	}
	xs, err := numericValues(paid, models.ColPrice)
	if err != nil {
		return 0, fmt.Errorf("median paid price: %w", err)
	}
	return sortedSample(xs).Quantile(0.5), nil
}

// BoxStats 按groupCol分组计算valueCol的五数概括，按中位数降序
func BoxStats(df dataframe.DataFrame, groupCol, valueCol string) ([]BoxStat, error) {
	values, err := numericValues(df, valueCol)
	if err != nil {
		return nil, fmt.Errorf("box stats %s by %s: %w", valueCol, groupCol, err)
	}
	groupSeries := df.Col(groupCol)
	if groupSeries.Err != nil {
		return nil, fmt.Errorf("box stats %s by %s: %w", valueCol, groupCol, groupSeries.Err)
	}
	groups := groupSeries.Records()

	buckets := make(map[string][]float64)
	var order []string
	for i, g := range groups {
		if _, ok := buckets[g]; !ok {
			order = append(order, g)
		}
		buckets[g] = append(buckets[g], values[i])
	}

	out := make([]BoxStat, 0, len(order))
	for _, g := range order {
		s := sortedSample(buckets[g])
		min, max := s.Bounds()
		out = append(out, BoxStat{
			Group:  g,
			N:      len(s.Xs),
			Min:    min,
			Q1:     s.Quantile(0.25),
			Median: s.Quantile(0.5),
			Q3:     s.Quantile(0.75),
			Max:    max,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Median > out[b].Median
	})
	return out, nil
}
