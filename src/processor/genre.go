package processor

import (
	"strings"

	"AppMarketAnalysis/src/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// GenreSeparator 多个题材之间的分隔符
const GenreSeparator = ";"

// SplitGenres 拆分题材串，去掉空白并跳过空项
func SplitGenres(raw string) []string {
	var out []string
	for _, token := range strings.Split(raw, GenreSeparator) {
		token = strings.TrimSpace(token)
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

// ExplodeGenres 每个题材一行，生成新的 App/Category/Genre 表，原表不变
func ExplodeGenres(df dataframe.DataFrame) dataframe.DataFrame {
	apps := df.Col(models.ColApp).Records()
	categories := df.Col(models.ColCategory).Records()
	genres := df.Col(models.ColGenres).Records()

	var outApps, outCategories, outGenres []string
	for i, raw := range genres {
		for _, g := range SplitGenres(raw) {
			outApps = append(outApps, apps[i])
			outCategories = append(outCategories, categories[i])
			outGenres = append(outGenres, g)
		}
	}

	return dataframe.New(
		series.New(nonNil(outApps), series.String, models.ColApp),
		series.New(nonNil(outCategories), series.String, models.ColCategory),
		series.New(nonNil(outGenres), series.String, models.ColGenre),
	)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// GenreCounts 展开后各题材的应用数
func GenreCounts(exploded dataframe.DataFrame) []Count {
	return valueCounts(exploded.Col(models.ColGenre).Records())
}

// TopGenres 应用数最多的n个题材
func TopGenres(exploded dataframe.DataFrame, n int) []Count {
	return head(GenreCounts(exploded), n)
}

// UniqueGenres 原始题材串(未拆分)的不同取值个数
func UniqueGenres(df dataframe.DataFrame) int {
	seen := make(map[string]struct{})
	for _, g := range df.Col(models.ColGenres).Records() {
		seen[g] = struct{}{}
	}
	return len(seen)
}
