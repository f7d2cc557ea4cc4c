package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
	"golang.org/x/time/rate"
)

const (
	searchEndpoint = "https://shopee.co.th/api/v4/search/search_items"
	imageBaseURL   = "https://cf.shopee.co.th/file/"
	productBaseURL = "https://shopee.co.th/product/"

	pageSize = 60
	// Informal abuse threshold on the search API; one page per 1.2s is safe.
	pagePause = 1200 * time.Millisecond
)

type ShopeeClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	endpoint   string
}

type searchResponse struct {
	Items []struct {
		ItemBasic *itemBasic `json:"item_basic"`
	} `json:"items"`
}

type itemBasic struct {
	ItemID         int64  `json:"itemid"`
	ShopID         int64  `json:"shopid"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	HistoricalSold int64  `json:"historical_sold"`
	ItemRating     *struct {
		RatingStar float64 `json:"rating_star"`
	} `json:"item_rating"`
	LikedCount   int64  `json:"liked_count"`
	ShopLocation string `json:"shop_location"`
	Currency     string `json:"currency"`
	Image        string `json:"image"`
	CatID        int64  `json:"catid"`
	CTime        int64  `json:"ctime"`
}

func NewShopeeClient(userAgent string) *ShopeeClient {
	return &ShopeeClient{
		httpClient: &http.Client{Timeout: 25 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(pagePause), 1),
		userAgent:  userAgent,
		endpoint:   searchEndpoint,
	}
}

// Search pages through search results until limit items are collected or the
// backend runs dry. Page failures end the walk; whatever was collected so far
// is returned as a valid partial result.
func (sc *ShopeeClient) Search(ctx context.Context, keyword string, limit int, sortBy string) ([]domain.Listing, error) {
	var results []domain.Listing
	newest := 0

	for len(results) < limit {
		// Wait for token; also paces the very first page on a warm limiter
		if err := sc.limiter.Wait(ctx); err != nil {
			return results, nil
		}

		page, err := sc.fetchPage(ctx, keyword, min(pageSize, limit-len(results)), newest, sortBy)
		if err != nil || len(page.Items) == 0 {
			break
		}

		for _, it := range page.Items {
			if it.ItemBasic == nil {
				continue
			}
			results = append(results, normalize(it.ItemBasic))
		}
		newest += len(page.Items)
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (sc *ShopeeClient) fetchPage(ctx context.Context, keyword string, limit, newest int, sortBy string) (*searchResponse, error) {
	params := url.Values{}
	params.Set("by", sortBy) // relevancy | sales | price
	params.Set("keyword", keyword)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("newest", strconv.Itoa(newest))
	params.Set("order", "desc")
	params.Set("page_type", "search")
	params.Set("version", "2")

	req, _ := http.NewRequestWithContext(ctx, "GET", sc.endpoint+"?"+params.Encode(), nil)
	req.Header.Set("User-Agent", sc.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "th-TH,th;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Referer", "https://shopee.co.th/")

	resp, err := sc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("search status: %d", resp.StatusCode)
	}

	var sResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sResp); err != nil {
		return nil, err
	}
	return &sResp, nil
}

// normalize maps a raw provider record onto the canonical Listing. Prices
// arrive as fixed-point integers scaled by 100000.
func normalize(b *itemBasic) domain.Listing {
	l := domain.Listing{
		ItemID:         b.ItemID,
		ShopID:         b.ShopID,
		Name:           b.Name,
		Price:          float64(b.Price) / 100000,
		HistoricalSold: b.HistoricalSold,
		LikedCount:     b.LikedCount,
		ShopLocation:   b.ShopLocation,
		Currency:       b.Currency,
		CategoryID:     b.CatID,
		CreatedAt:      b.CTime,
	}
	if b.ItemRating != nil {
		l.RatingStars = b.ItemRating.RatingStar
	}
	if b.Image != "" {
		img := imageBaseURL + b.Image
		l.ImageURL = &img
	}
	if b.ItemID != 0 && b.ShopID != 0 {
		detail := fmt.Sprintf("%s%d/%d", productBaseURL, b.ShopID, b.ItemID)
		l.DetailURL = &detail
	}
	return l
}
