package domain

import "context"

// Category is one sweep target: a label plus ordered candidate keywords.
// Only the first keyword drives a sweep today.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Listing is the clean data structure handed to ranking and to API clients.
// ImageURL and DetailURL stay nil when their source fields are missing; a
// malformed URL is never synthesized. CommissionRate nil means no provider
// returned a value, which is not the same as a rate of 0.
type Listing struct {
	ItemID         int64    `json:"itemid"`
	ShopID         int64    `json:"shopid"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	HistoricalSold int64    `json:"historical_sold"`
	RatingStars    float64  `json:"rating_star"`
	LikedCount     int64    `json:"liked_count"`
	ShopLocation   string   `json:"shop_location"`
	Currency       string   `json:"currency"`
	ImageURL       *string  `json:"image"`
	DetailURL      *string  `json:"url"`
	CategoryID     int64    `json:"catid"`
	CreatedAt      int64    `json:"ctime"`
	CommissionRate *float64 `json:"commission_rate"`
	Score          *float64 `json:"score"`
}

// ProviderConfig holds the affiliate API connection parameters. The resolver
// receives it by value and replaces it wholesale on update.
type ProviderConfig struct {
	Enabled  bool   `json:"enabled"`
	Endpoint string `json:"endpoint"`
	AppID    string `json:"app_id"`
	Secret   string `json:"secret"`
}

// Config is the persisted configuration document.
type Config struct {
	Affiliate ProviderConfig `json:"affiliate"`
}

// Collector defines the interface for marketplace discovery
type Collector interface {
	Search(ctx context.Context, keyword string, limit int, sortBy string) ([]Listing, error)
}
