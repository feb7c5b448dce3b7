// clean.go
package processor

import (
	"fmt"
	"strconv"
	"strings"

	"AppMarketAnalysis/src/config"
	"AppMarketAnalysis/src/models"
	"AppMarketAnalysis/src/storage"
	"AppMarketAnalysis/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DedupKeys 判定重复抓取的列组合
var DedupKeys = []string{models.ColApp, models.ColType, models.ColPrice}

// numericRule 文本格式的数值列: 先去掉固定的格式字符再解析
type numericRule struct {
	column string
	strip  string
	kind   series.Type
}

var numericRules = []numericRule{
	{models.ColInstalls, ",", series.Int},
	{models.ColPrice, "$", series.Float},
	{models.ColRating, "", series.Float},
	{models.ColSizeMBs, "", series.Float},
	{models.ColReviews, "", series.Int},
}

// CleaningReport 各清洗步骤的行数变化
type CleaningReport struct {
	Loaded            int
	NullsRemoved      int
	DuplicatesRemoved int
	JunkRemoved       int
	Final             int
}

// Result 清洗结果
type Result struct {
	Table  dataframe.DataFrame
	Report CleaningReport
}

// Pipeline 清洗流水线
type Pipeline struct {
	DropColumns   []string
	DedupKeys     []string
	JunkThreshold float64
	logger        *storage.Logger
}

// NewPipeline 按配置创建流水线
func NewPipeline(cfg *config.Config, logger *storage.Logger) *Pipeline {
	return &Pipeline{
		DropColumns:   cfg.DropColumns,
		DedupKeys:     DedupKeys,
		JunkThreshold: cfg.JunkThreshold,
		logger:        logger,
	}
}

// Run 依次执行: 删列 -> 去空值 -> 去重 -> 数值化 -> 过滤垃圾价格 -> 计算收入
func (p *Pipeline) Run(raw dataframe.DataFrame) (Result, error) {
	if err := ValidateSchema(raw); err != nil {
		return Result{}, err
	}

	report := CleaningReport{Loaded: raw.Nrow()}
	p.logger.Infof("[cleaner] loaded %d rows, %d columns", raw.Nrow(), raw.Ncol())

	df := PruneColumns(raw, p.DropColumns)
	p.logger.Debugf("[cleaner] columns after pruning: %v", df.Names())

	df, report.NullsRemoved = DropNulls(df)
	p.logger.Infof("[cleaner] dropped %d rows with missing values", report.NullsRemoved)

	df, report.DuplicatesRemoved = DropDuplicates(df, p.DedupKeys...)
	p.logger.Infof("[cleaner] dropped %d duplicate listings on %v", report.DuplicatesRemoved, p.DedupKeys)

	df, err := NormalizeNumeric(df)
	if err != nil {
		return Result{}, err
	}

	df, report.JunkRemoved, err = FilterJunk(df, p.JunkThreshold)
	if err != nil {
		return Result{}, err
	}
	p.logger.Infof("[cleaner] dropped %d listings priced outside [0, %g)", report.JunkRemoved, p.JunkThreshold)

	df, err = AddRevenue(df)
	if err != nil {
		return Result{}, err
	}

	report.Final = df.Nrow()
	p.logger.Infof("[cleaner] cleaned %d → %d listings", report.Loaded, report.Final)
	return Result{Table: df, Report: report}, nil
}

// ValidateSchema 检查必要列是否存在
func ValidateSchema(df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("%w: %w", models.ErrInput, df.Err)
	}
	if missing := utils.MissingColumns(df, models.RequiredColumns); len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %v", models.ErrInput, missing)
	}
	return nil
}

// PruneColumns 删除下游不使用的列，不存在的列忽略
func PruneColumns(df dataframe.DataFrame, cols []string) dataframe.DataFrame {
	var present []string
	for _, c := range cols {
		if utils.HasColumn(df, c) {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return df
	}
	return df.Drop(present)
}

// DropNulls 删除任一列为缺失值的行，返回删除的行数
func DropNulls(df dataframe.DataFrame) (dataframe.DataFrame, int) {
	if df.Nrow() == 0 || df.Ncol() == 0 {
		return df, 0
	}

	filters := make([]dataframe.F, 0, df.Ncol())
	for _, name := range df.Names() {
		filters = append(filters, dataframe.F{
			Colname:    name,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool {
				return !el.IsNA()
			},
		})
	}

	out := df.FilterAggregation(dataframe.And, filters...)
	return out, df.Nrow() - out.Nrow()
}

// DropDuplicates 按keys去重，保留原始顺序中的第一条
func DropDuplicates(df dataframe.DataFrame, keys ...string) (dataframe.DataFrame, int) {
	if df.Nrow() == 0 || len(keys) == 0 {
		return df, 0
	}

	cols := make([][]string, len(keys))
	for i, k := range keys {
		cols[i] = df.Col(k).Records()
	}

	seen := make(map[string]struct{}, df.Nrow())
	keep := make([]int, 0, df.Nrow())
	parts := make([]string, len(keys))
	for row := 0; row < df.Nrow(); row++ {
		for i := range cols {
			parts[i] = cols[i][row]
		}
		key := strings.Join(parts, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, row)
	}

	if len(keep) == df.Nrow() {
		return df, 0
	}
	return df.Subset(keep), df.Nrow() - len(keep)
}

// NormalizeNumeric 将文本数值列转为数值类型；已是数值的列跳过
func NormalizeNumeric(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, rule := range numericRules {
		s := df.Col(rule.column)
		if s.Err != nil {
			return df, fmt.Errorf("%w: %w", models.ErrInput, s.Err)
		}
		if s.Type() == rule.kind {
			continue
		}

		parsed, err := parseColumn(rule, s.Records())
		if err != nil {
			return df, err
		}
		df = df.Mutate(parsed)
		if df.Err != nil {
			return df, fmt.Errorf("normalize %s: %w", rule.column, df.Err)
		}
	}
	return df, nil
}

func parseColumn(rule numericRule, records []string) (series.Series, error) {
	ints := make([]int, 0, len(records))
	floats := make([]float64, 0, len(records))

	for row, raw := range records {
		text := strings.TrimSpace(raw)
		if rule.strip != "" {
			text = strings.ReplaceAll(text, rule.strip, "")
		}

		switch rule.kind {
		case series.Int:
			n, err := strconv.Atoi(text)
			if err != nil {
				return series.Series{}, &models.ParseError{Column: rule.column, Row: row, Value: raw, Err: err}
			}
			ints = append(ints, n)
		default:
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return series.Series{}, &models.ParseError{Column: rule.column, Row: row, Value: raw, Err: err}
			}
			floats = append(floats, f)
		}
	}

	if rule.kind == series.Int {
		return series.New(ints, series.Int, rule.column), nil
	}
	return series.New(floats, series.Float, rule.column), nil
}

// FilterJunk 只保留 0 <= Price < threshold 的行
func FilterJunk(df dataframe.DataFrame, threshold float64) (dataframe.DataFrame, int, error) {
	if t := df.Col(models.ColPrice).Type(); t != series.Float {
		return df, 0, fmt.Errorf("%w: %s is %s, expected float", models.ErrDataIntegrity, models.ColPrice, t)
	}
	if df.Nrow() == 0 {
		return df, 0, nil
	}

	out := df.FilterAggregation(dataframe.And,
		dataframe.F{Colname: models.ColPrice, Comparator: series.GreaterEq, Comparando: 0.0},
		dataframe.F{Colname: models.ColPrice, Comparator: series.Less, Comparando: threshold},
	)
	if out.Err != nil {
		return df, 0, fmt.Errorf("filter junk: %w", out.Err)
	}
	return out, df.Nrow() - out.Nrow(), nil
}

// AddRevenue 计算 Revenue_Estimate = Installs × Price，免费应用为0
func AddRevenue(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	installs, err := df.Col(models.ColInstalls).Int()
	if err != nil {
		return df, fmt.Errorf("%w: %s: %w", models.ErrDataIntegrity, models.ColInstalls, err)
	}
	prices := df.Col(models.ColPrice).Float()

	revenue := make([]float64, len(installs))
	for i := range installs {
		revenue[i] = float64(installs[i]) * prices[i]
	}

	out := df.Mutate(series.New(revenue, series.Float, models.ColRevenueEstimate))
	if out.Err != nil {
		return df, fmt.Errorf("add revenue: %w", out.Err)
	}
	return out, nil
}
