package ranking

import (
	"context"
	"sort"
	"strconv"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
)

const (
	SortBySold  = "sold"
	SortByScore = "score"
)

// RateSource resolves commission rates for a set of item ids. Absent ids mean
// "unknown", which the pipeline keeps distinct from a rate of 0.
type RateSource interface {
	Resolve(ctx context.Context, ids []string) map[string]float64
}

// Pipeline filters raw listings, enriches the survivors with commission data
// and sorts them for the caller.
type Pipeline struct {
	Rates RateSource
}

func New(rates RateSource) *Pipeline {
	return &Pipeline{Rates: rates}
}

// Rank applies inclusive minimum-rating / minimum-sold filters, attaches
// commission rates and scores, then sorts by sortMode. The sort is stable for
// exact ties.
func (p *Pipeline) Rank(ctx context.Context, listings []domain.Listing, minRating float64, minSold int64, sortMode string) []domain.Listing {
	filtered := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.RatingStars < minRating || l.HistoricalSold < minSold {
			continue
		}
		filtered = append(filtered, l)
	}

	var ids []string
	for _, l := range filtered {
		if l.ItemID != 0 {
			ids = append(ids, strconv.FormatInt(l.ItemID, 10))
		}
	}
	rates := p.Rates.Resolve(ctx, ids)

	for i := range filtered {
		l := &filtered[i]
		if rate, ok := rates[strconv.FormatInt(l.ItemID, 10)]; ok {
			r := rate
			l.CommissionRate = &r
		}
		score := rateOrZero(l.CommissionRate) * float64(l.HistoricalSold)
		if l.CommissionRate != nil {
			l.Score = &score
		}
	}

	switch sortMode {
	case SortByScore:
		// Key is (score != nil, score) descending: a nil score sorts after
		// every defined score, including an explicit 0.
		sort.SliceStable(filtered, func(i, j int) bool {
			si, sj := filtered[i].Score, filtered[j].Score
			if (si != nil) != (sj != nil) {
				return si != nil
			}
			if si == nil {
				return false
			}
			return *si > *sj
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].HistoricalSold > filtered[j].HistoricalSold
		})
	}
	return filtered
}

func rateOrZero(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}
