package sweep

import (
	"context"
	"errors"
	"testing"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/ranking"
)

type fakeCollector struct {
	byKeyword map[string][]domain.Listing
	keywords  []string
}

func (f *fakeCollector) Search(ctx context.Context, keyword string, limit int, sortBy string) ([]domain.Listing, error) {
	f.keywords = append(f.keywords, keyword)
	listings, ok := f.byKeyword[keyword]
	if !ok {
		return nil, errors.New("backend unavailable")
	}
	if len(listings) > limit {
		listings = listings[:limit]
	}
	return listings, nil
}

type noRates struct{}

func (noRates) Resolve(ctx context.Context, ids []string) map[string]float64 {
	return map[string]float64{}
}

func TestRunSweepsCategoriesIndependently(t *testing.T) {
	coll := &fakeCollector{byKeyword: map[string][]domain.Listing{
		"fan": {
			{ItemID: 1, HistoricalSold: 200, RatingStars: 5},
			{ItemID: 2, HistoricalSold: 900, RatingStars: 5},
		},
		"kettle": {}, // matches nothing after filtering
	}}

	cats := []domain.Category{
		{Name: "Home", Keywords: []string{"fan", "cooler"}},
		{Name: "Kitchen", Keywords: []string{"kettle"}},
		{Name: "Broken", Keywords: []string{"nope"}}, // search fails outright
	}

	r := NewRunner(coll, ranking.New(noRates{}))
	results := r.Run(context.Background(), cats, 20, 4.5, 100, false)

	if len(results) != 3 {
		t.Fatalf("expected one result per category, got %d", len(results))
	}

	// Only the first keyword of each category drives the sweep
	wantKeywords := []string{"fan", "kettle", "nope"}
	for i, k := range wantKeywords {
		if coll.keywords[i] != k {
			t.Errorf("search %d used keyword %q, want %q", i, coll.keywords[i], k)
		}
	}

	if results[0].Top == nil || results[0].Top.ItemID != 2 {
		t.Errorf("Home top = %+v, want item 2 (highest sold)", results[0].Top)
	}
	if len(results[0].Items) != 2 {
		t.Errorf("Home items = %d, want 2", len(results[0].Items))
	}

	// Empty and failed categories yield empty entries, never abort the sweep
	for _, i := range []int{1, 2} {
		if results[i].Top != nil {
			t.Errorf("%s top = %+v, want nil", results[i].Category.Name, results[i].Top)
		}
		if len(results[i].Items) != 0 {
			t.Errorf("%s items = %d, want 0", results[i].Category.Name, len(results[i].Items))
		}
	}
}

func TestRunUsesScoreModeWhenRequested(t *testing.T) {
	coll := &fakeCollector{byKeyword: map[string][]domain.Listing{
		"fan": {
			{ItemID: 1, HistoricalSold: 900, RatingStars: 5}, // unscored
			{ItemID: 2, HistoricalSold: 200, RatingStars: 5}, // scored below
		},
	}}

	rates := map[string]float64{"2": 0.1}
	r := NewRunner(coll, ranking.New(staticRates(rates)))
	results := r.Run(context.Background(), []domain.Category{{Name: "Home", Keywords: []string{"fan"}}}, 20, 0, 0, true)

	if results[0].Top == nil || results[0].Top.ItemID != 2 {
		t.Fatalf("top = %+v, want the scored item 2", results[0].Top)
	}
}

type staticRates map[string]float64

func (s staticRates) Resolve(ctx context.Context, ids []string) map[string]float64 {
	out := make(map[string]float64)
	for _, id := range ids {
		if rate, ok := s[id]; ok {
			out[id] = rate
		}
	}
	return out
}
