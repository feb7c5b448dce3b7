// charts.go
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"AppMarketAnalysis/src/models"
	"AppMarketAnalysis/src/processor"
	"AppMarketAnalysis/src/storage"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// 输出文件名
const (
	ContentRatingFile = "content_rating.png"
	TopCategoriesFile = "top_categories.png"
	InstallsFile      = "category_installs.png"
	ConcentrationFile = "category_concentration.png"
	TopGenresFile     = "top_genres.png"
	FreeVsPaidFile    = "free_vs_paid.png"
)

var (
	freeColor = chart.ColorBlue
	paidColor = chart.ColorOrange
)

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Renderer 把汇总视图画成PNG，只读视图数据
type Renderer struct {
	Dir    string
	Width  int
	Height int
	logger *storage.Logger
}

func NewRenderer(dir string, logger *storage.Logger) *Renderer {
	return &Renderer{Dir: dir, Width: 1280, Height: 720, logger: logger}
}

// RenderAll 生成全部图表，单张失败只记日志；返回成功写出的文件
func (r *Renderer) RenderAll(s *processor.Summary) []string {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		r.logger.Errorf("[render] create chart dir %s: %v", r.Dir, err)
		return nil
	}

	jobs := []struct {
		name  string
		build func() (renderable, bool)
	}{
		{ContentRatingFile, func() (renderable, bool) { return ContentRatingPie(s.ContentRatings, r.Width, r.Height) }},
		{TopCategoriesFile, func() (renderable, bool) {
			return CountBar("Top categories by number of apps", s.TopCategories, r.Width, r.Height)
		}},
		{InstallsFile, func() (renderable, bool) { return InstallsBar(s.CategoryInstalls, r.Width, r.Height) }},
		{ConcentrationFile, func() (renderable, bool) { return ConcentrationScatter(s.Concentration, r.Width, r.Height) }},
		{TopGenresFile, func() (renderable, bool) {
			return CountBar("Top genres by number of apps", s.TopGenres, r.Width, r.Height)
		}},
		{FreeVsPaidFile, func() (renderable, bool) { return FreeVsPaidBar(s.FreeVsPaid, r.Width, r.Height) }},
	}

	var written []string
	for _, job := range jobs {
		c, ok := job.build()
		if !ok {
			r.logger.Debugf("[render] %s: no data, skipped", job.name)
			continue
		}
		path := filepath.Join(r.Dir, job.name)
		if err := save(path, c); err != nil {
			r.logger.Errorf("[render] %s: %v", job.name, err)
			continue
		}
		written = append(written, path)
	}
	r.logger.Infof("[render] wrote %d charts to %s", len(written), r.Dir)
	return written
}

func save(path string, c renderable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render: %w", err)
	}
	return f.Close()
}

// ContentRatingPie 内容分级饼图
func ContentRatingPie(counts []processor.Count, width, height int) (chart.PieChart, bool) {
	if len(counts) == 0 {
		return chart.PieChart{}, false
	}
	values := make([]chart.Value, len(counts))
	for i, c := range counts {
		values[i] = chart.Value{Label: fmt.Sprintf("%s (%d)", c.Label, c.N), Value: float64(c.N)}
	}
	return chart.PieChart{
		Title:  "Content rating",
		Width:  width,
		Height: height,
		Values: values,
	}, true
}

// CountBar 计数柱状图
func CountBar(title string, counts []processor.Count, width, height int) (chart.BarChart, bool) {
	if len(counts) == 0 {
		return chart.BarChart{}, false
	}
	bars := make([]chart.Value, len(counts))
	for i, c := range counts {
		bars[i] = chart.Value{Label: c.Label, Value: float64(c.N)}
	}
	return barChart(title, bars, width, height), true
}

// InstallsBar 各分类安装量(按安装量升序)
func InstallsBar(stats []processor.CategoryStats, width, height int) (chart.BarChart, bool) {
	if len(stats) == 0 {
		return chart.BarChart{}, false
	}
	bars := make([]chart.Value, len(stats))
	for i, s := range stats {
		bars[i] = chart.Value{Label: s.Category, Value: float64(s.Installs)}
	}
	return barChart("Category popularity by installs", bars, width, height), true
}

func barChart(title string, bars []chart.Value, width, height int) chart.BarChart {
	max := 0.0
	for _, b := range bars {
		max = math.Max(max, b.Value)
	}
	if max <= 0 {
		max = 1
	}
	return chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   height,
		BarWidth: barWidth(len(bars), width),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 120},
		},
		XAxis: chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: max},
			ValueFormatter: compactFormatter,
		},
		Bars: bars,
	}
}

func barWidth(n, width int) int {
	w := (width - 200) / (2 * n)
	if w > 60 {
		return 60
	}
	if w < 4 {
		return 4
	}
	return w
}

// ConcentrationScatter 分类应用数与安装量(log10)散点图
func ConcentrationScatter(stats []processor.CategoryStats, width, height int) (chart.Chart, bool) {
	if len(stats) == 0 {
		return chart.Chart{}, false
	}

	xs := make([]float64, len(stats))
	ys := make([]float64, len(stats))
	maxX, maxY := 1.0, 1.0
	for i, s := range stats {
		xs[i] = float64(s.Apps)
		ys[i] = math.Log10(math.Max(float64(s.Installs), 1))
		maxX = math.Max(maxX, xs[i])
		maxY = math.Max(maxY, ys[i])
	}
	// 只有一个点时补一个相同的点，避免x轴跨度为0
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}

	return chart.Chart{
		Title:  "Category concentration",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "Number of apps",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(maxX * 1.1)},
		},
		YAxis: chart.YAxis{
			Name:  "Installs (log10)",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(maxY) + 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    models.ColCategory,
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(freeColor),
			},
		},
	}, true
}

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// FreeVsPaidBar 每个分类免费/付费应用数(分组柱，对数y轴)
func FreeVsPaidBar(rows []processor.CategoryTypeCount, width, height int) (chart.BarChart, bool) {
	if len(rows) == 0 {
		return chart.BarChart{}, false
	}

	// 每个分类两根柱子：免费在前，付费在后，只有免费柱带分类名
	var bars []chart.Value
	index := make(map[string]int)
	max := 1.0
	for _, row := range rows {
		i, ok := index[row.Category]
		if !ok {
			i = len(bars)
			index[row.Category] = i
			bars = append(bars,
				chart.Value{Label: row.Category, Style: chart.Style{FillColor: freeColor, StrokeColor: freeColor}},
				chart.Value{Label: "", Style: chart.Style{FillColor: paidColor, StrokeColor: paidColor}},
			)
		}
		switch row.Type {
		case models.TypeFree:
			bars[i].Value += float64(row.Apps)
			max = math.Max(max, bars[i].Value)
		case models.TypePaid:
			bars[i+1].Value += float64(row.Apps)
			max = math.Max(max, bars[i+1].Value)
		}
	}

	return chart.BarChart{
		Title:    "Free (blue) vs paid (orange) apps per category",
		Width:    width,
		Height:   height,
		BarWidth: barWidth(len(bars), width),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 120},
		},
		XAxis: chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Range:          &chart.LogarithmicRange{Min: 0, Max: logCeil(max)},
			ValueFormatter: compactFormatter,
		},
		Bars: bars,
	}, true
}

// logCeil 不小于v的10的整数次幂，至少为10
func logCeil(v float64) float64 {
	c := 10.0
	for c < v {
		c *= 10
	}
	return c
}

func compactFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	switch {
	case f >= 1e9:
		return fmt.Sprintf("%.1fB", f/1e9)
	case f >= 1e6:
		return fmt.Sprintf("%.1fM", f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%.1fK", f/1e3)
	default:
		return fmt.Sprintf("%.0f", f)
	}
}
