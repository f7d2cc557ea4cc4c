package dashboard

import (
	"io"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/sweep"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Render draws the last sweep snapshot as two charts: listing volume per
// category and the winning score per category.
func Render(w io.Writer, results []sweep.Result) error {
	// 1. Category volume
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Listings per Category"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	var pieItems []opts.PieData
	for _, res := range results {
		pieItems = append(pieItems, opts.PieData{Name: res.Category.Name, Value: len(res.Items)})
	}
	pie.AddSeries("Listings", pieItems)

	// 2. Top score per category
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top Score per Category"}))

	var barX []string
	var barY []opts.BarData
	for _, res := range results {
		score := 0.0
		if res.Top != nil && res.Top.Score != nil {
			score = *res.Top.Score
		}
		barX = append(barX, res.Category.Name)
		barY = append(barY, opts.BarData{Value: score})
	}
	bar.SetXAxis(barX).AddSeries("Score", barY)

	if err := pie.Render(w); err != nil {
		return err
	}
	return bar.Render(w)
}
