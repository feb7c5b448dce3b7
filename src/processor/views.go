// views.go
package processor

import (
	"fmt"
	"sort"

	"AppMarketAnalysis/src/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Count 某个取值及其出现次数
type Count struct {
	Label string
	N     int
}

// CategoryStats 分类维度的应用数与安装量
type CategoryStats struct {
	Category string
	Apps     int
	Installs int
}

// CategoryTypeCount 分类+类型(Free/Paid)的应用数
type CategoryTypeCount struct {
	Category string
	Type     string
	Apps     int
}

// InstallBucket 某个安装量档位的应用数
type InstallBucket struct {
	Installs int
	Apps     int
}

// valueCounts 按次数降序，次数相同按首次出现顺序
func valueCounts(values []string) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, v := range values {
		i, ok := index[v]
		if !ok {
			i = len(counts)
			index[v] = i
			counts = append(counts, Count{Label: v})
		}
		counts[i].N++
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].N > counts[b].N
	})
	return counts
}

func head[T any](items []T, n int) []T {
	if n < len(items) {
		return items[:n]
	}
	return items
}

// TopN 按col降序取前n行，相同值保持原始行序
func TopN(df dataframe.DataFrame, col string, n int) (dataframe.DataFrame, error) {
	s := df.Col(col)
	if s.Err != nil {
		return df, fmt.Errorf("top %d by %s: %w", n, col, s.Err)
	}
	if s.Type() == series.String {
		return df, fmt.Errorf("top %d by %s: column is not numeric", n, col)
	}

	values := s.Float()
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	if n < 0 {
		n = 0
	}
	return df.Subset(head(order, n)), nil
}

// CategoryCount 各分类的应用数(value_counts)
func CategoryCount(df dataframe.DataFrame) []Count {
	return valueCounts(df.Col(models.ColCategory).Records())
}

// UniqueCategories 分类个数
func UniqueCategories(df dataframe.DataFrame) int {
	return len(CategoryCount(df))
}

// TopCategories 应用数最多的n个分类
func TopCategories(df dataframe.DataFrame, n int) []Count {
	return head(CategoryCount(df), n)
}

// CategoryInstalls 各分类安装量合计，按安装量升序
func CategoryInstalls(df dataframe.DataFrame) ([]CategoryStats, error) {
	if df.Nrow() == 0 {
		return nil, nil
	}

	groups := df.GroupBy(models.ColCategory)
	if groups.Err != nil {
		return nil, fmt.Errorf("group by %s: %w", models.ColCategory, groups.Err)
	}

	var stats []CategoryStats
	for category, group := range groups.GetGroups() {
		var installs float64
		for _, v := range group.Col(models.ColInstalls).Float() {
			installs += v
		}
		stats = append(stats, CategoryStats{
			Category: category,
			Apps:     group.Nrow(),
			Installs: int(installs),
		})
	}

	sort.Slice(stats, func(a, b int) bool {
		if stats[a].Installs != stats[b].Installs {
			return stats[a].Installs < stats[b].Installs
		}
		return stats[a].Category < stats[b].Category
	})
	return stats, nil
}

// CategoryConcentration 分类的应用数与安装量合并，按安装量降序
func CategoryConcentration(df dataframe.DataFrame) ([]CategoryStats, error) {
	stats, err := CategoryInstalls(df)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryStats, len(stats))
	for i, s := range stats {
		out[len(stats)-1-i] = s
	}
	return out, nil
}

// ContentRatingCounts 内容分级分布
func ContentRatingCounts(df dataframe.DataFrame) []Count {
	return valueCounts(df.Col(models.ColContentRating).Records())
}

// TypeCounts Free/Paid 数量
func TypeCounts(df dataframe.DataFrame) []Count {
	return valueCounts(df.Col(models.ColType).Records())
}

// FreeVsPaid 每个分类下免费与付费应用数；分类按总数降序，类型按字母序
func FreeVsPaid(df dataframe.DataFrame) []CategoryTypeCount {
	categories := df.Col(models.ColCategory).Records()
	types := df.Col(models.ColType).Records()

	type key struct{ category, typ string }
	counts := make(map[key]int)
	for i := range categories {
		counts[key{categories[i], types[i]}]++
	}

	rank := make(map[string]int)
	for i, c := range CategoryCount(df) {
		rank[c.Label] = i
	}

	out := make([]CategoryTypeCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, CategoryTypeCount{Category: k.category, Type: k.typ, Apps: n})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Category != out[b].Category {
			return rank[out[a].Category] < rank[out[b].Category]
		}
		return out[a].Type < out[b].Type
	})
	return out
}

// InstallsDistribution 每个安装量档位的应用数，按安装量升序
func InstallsDistribution(df dataframe.DataFrame) ([]InstallBucket, error) {
	installs, err := df.Col(models.ColInstalls).Int()
	if err != nil {
		return nil, fmt.Errorf("installs distribution: %w", err)
	}

	counts := make(map[int]int)
	for _, n := range installs {
		counts[n]++
	}
	out := make([]InstallBucket, 0, len(counts))
	for n, apps := range counts {
		out = append(out, InstallBucket{Installs: n, Apps: apps})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Installs < out[b].Installs })
	return out, nil
}

// PaidApps 付费应用子表
func PaidApps(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Nrow() == 0 {
		return df
	}
	return df.Filter(dataframe.F{
		Colname:    models.ColType,
		Comparator: series.Eq,
		Comparando: models.TypePaid,
	})
}

// ToRecords 将清洗后的数据表转为记录
func ToRecords(df dataframe.DataFrame) ([]models.AppRecord, error) {
	installs, err := df.Col(models.ColInstalls).Int()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", models.ColInstalls, err)
	}
	reviews, err := df.Col(models.ColReviews).Int()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", models.ColReviews, err)
	}

	var revenue []float64
	if rs := df.Col(models.ColRevenueEstimate); rs.Err == nil {
		revenue = rs.Float()
	}

	names := df.Col(models.ColApp).Records()
	categories := df.Col(models.ColCategory).Records()
	ratings := df.Col(models.ColRating).Float()
	sizes := df.Col(models.ColSizeMBs).Float()
	types := df.Col(models.ColType).Records()
	prices := df.Col(models.ColPrice).Float()
	contentRatings := df.Col(models.ColContentRating).Records()
	genres := df.Col(models.ColGenres).Records()

	records := make([]models.AppRecord, df.Nrow())
	for i := range records {
		records[i] = models.AppRecord{
			Name:          names[i],
			Category:      categories[i],
			Rating:        ratings[i],
			Reviews:       reviews[i],
			SizeMBs:       sizes[i],
			Installs:      installs[i],
			Type:          types[i],
			Price:         prices[i],
			ContentRating: contentRatings[i],
			Genres:        genres[i],
		}
		if revenue != nil {
			records[i].RevenueEstimate = revenue[i]
		}
	}
	return records, nil
}
