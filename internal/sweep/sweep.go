package sweep

import (
	"context"
	"log/slog"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/ranking"
)

// Result is one category's slice of a sweep: the winning listing plus the
// full filtered and sorted list behind it.
type Result struct {
	Category domain.Category  `json:"category"`
	Top      *domain.Listing  `json:"top"`
	Items    []domain.Listing `json:"items"`
}

// Runner drives one discovery+rank pass per category.
type Runner struct {
	Collector domain.Collector
	Pipeline  *ranking.Pipeline
}

func NewRunner(collector domain.Collector, pipeline *ranking.Pipeline) *Runner {
	return &Runner{Collector: collector, Pipeline: pipeline}
}

// Run sweeps the categories in order using each one's first keyword.
// Categories are independent: an empty or failed category yields an empty
// entry and the sweep moves on. Listings are not deduplicated across
// categories.
func (r *Runner) Run(ctx context.Context, categories []domain.Category, limitPerCat int, minRating float64, minSold int64, useScore bool) []Result {
	sortMode := ranking.SortBySold
	if useScore {
		sortMode = ranking.SortByScore
	}

	results := make([]Result, 0, len(categories))
	for _, cat := range categories {
		keyword := ""
		if len(cat.Keywords) > 0 {
			keyword = cat.Keywords[0]
		}

		listings, err := r.Collector.Search(ctx, keyword, limitPerCat, "sales")
		if err != nil {
			slog.Error("sweep search failed", "category", cat.Name, "err", err)
		}

		ranked := r.Pipeline.Rank(ctx, listings, minRating, minSold, sortMode)

		res := Result{Category: cat, Items: ranked}
		if len(ranked) > 0 {
			top := ranked[0]
			res.Top = &top
		}
		results = append(results, res)
	}
	return results
}
