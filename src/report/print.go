// print.go
package report

import (
	"io"
	"math"
	"strings"

	"AppMarketAnalysis/src/models"
	"AppMarketAnalysis/src/processor"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const width = 64

// Print 输出控制台报告，数字带千分位
func Print(w io.Writer, s *processor.Summary) {
	p := message.NewPrinter(language.English)
	sep := strings.Repeat("═", width)
	thin := strings.Repeat("─", width)

	section := func(title string) {
		p.Fprintf(w, "  %s\n  %s\n", title, thin)
	}

	p.Fprintf(w, "\n%s\n  APP MARKET ANALYSIS\n%s\n\n", sep, sep)

	section("Cleaning")
	r := s.Report
	p.Fprintf(w, "  Loaded rows            : %d\n", r.Loaded)
	p.Fprintf(w, "  Rows with missing data : %d\n", r.NullsRemoved)
	p.Fprintf(w, "  Duplicate listings     : %d\n", r.DuplicatesRemoved)
	p.Fprintf(w, "  Junk-priced listings   : %d\n", r.JunkRemoved)
	p.Fprintf(w, "  Cleaned listings       : %d\n\n", r.Final)

	for _, ranked := range s.Rankings {
		section(ranked.Title)
		printRanking(p, w, ranked)
		p.Fprintln(w)
	}

	section("Categories")
	p.Fprintf(w, "  Unique categories: %d\n", s.UniqueCategories)
	printCounts(p, w, s.TopCategories)
	p.Fprintln(w)

	section("Category concentration (by installs)")
	if len(s.Concentration) == 0 {
		p.Fprintf(w, "  No data\n")
	}
	for _, c := range s.Concentration {
		p.Fprintf(w, "  %-28s %6d apps %18d installs\n", truncate(c.Category, 28), c.Apps, c.Installs)
	}
	p.Fprintln(w)

	section("Content rating")
	printCounts(p, w, s.ContentRatings)
	p.Fprintln(w)

	section("Genres")
	p.Fprintf(w, "  Unique genre combinations: %d\n", s.UniqueGenres)
	printCounts(p, w, s.TopGenres)
	p.Fprintln(w)

	section("Free vs paid")
	printCounts(p, w, s.Types)
	if math.IsNaN(s.MedianPaidPrice) {
		p.Fprintf(w, "  Median paid price: n/a\n")
	} else {
		p.Fprintf(w, "  Median paid price: $%.2f\n", s.MedianPaidPrice)
	}
	p.Fprintln(w)

	section("Describe")
	p.Fprintf(w, "  %-18s %8s %14s %14s %12s %14s %16s\n", "column", "count", "mean", "std", "min", "median", "max")
	for _, d := range s.Descriptions {
		p.Fprintf(w, "  %-18s %8d %14.2f %14.2f %12.2f %14.2f %16.2f\n",
			d.Column, d.Count, d.Mean, d.Std, d.Min, d.Median, d.Max)
	}

	p.Fprintf(w, "\n%s\n\n", sep)
}

func printRanking(p *message.Printer, w io.Writer, ranked processor.RankedTable) {
	t := ranked.Table
	if t.Nrow() == 0 {
		p.Fprintf(w, "  No data\n")
		return
	}
	names := t.Col(models.ColApp).Records()
	categories := t.Col(models.ColCategory).Records()
	values := t.Col(ranked.Column).Float()
	for i := range names {
		p.Fprintf(w, "  %2d. %-38s %-20s %s\n", i+1, truncate(names[i], 38), truncate(categories[i], 20),
			formatValue(p, ranked.Column, values[i]))
	}
}

func formatValue(p *message.Printer, column string, v float64) string {
	switch column {
	case models.ColPrice, models.ColRevenueEstimate:
		return p.Sprintf("$%.2f", v)
	case models.ColReviews, models.ColInstalls:
		return p.Sprintf("%d", int64(v))
	case models.ColSizeMBs:
		return p.Sprintf("%.1f MB", v)
	default:
		return p.Sprintf("%.1f", v)
	}
}

func printCounts(p *message.Printer, w io.Writer, counts []processor.Count) {
	if len(counts) == 0 {
		p.Fprintf(w, "  No data\n")
		return
	}
	for _, c := range counts {
		p.Fprintf(w, "  %-30s %d\n", truncate(c.Label, 28), c.N)
	}
}

// truncate 按字符截断，不会切开多字节字符
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
