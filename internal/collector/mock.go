package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
)

// MockClient implements domain.Collector but returns fake data
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) Search(ctx context.Context, keyword string, limit int, sortBy string) ([]domain.Listing, error) {
	// Simulate network latency (nice for demoing without hitting Shopee)
	time.Sleep(200 * time.Millisecond)

	var listings []domain.Listing
	for i := 0; i < limit; i++ {
		itemID := int64(1000000 + i)
		shopID := int64(77000 + i%5)
		img := fmt.Sprintf("%smock-%s-%d", imageBaseURL, keyword, i)
		detail := fmt.Sprintf("%s%d/%d", productBaseURL, shopID, itemID)
		listings = append(listings, domain.Listing{
			ItemID:         itemID,
			ShopID:         shopID,
			Name:           fmt.Sprintf("[%s] Simulated Product #%d", keyword, i),
			Price:          float64(rand.Intn(500000)) / 100000,
			HistoricalSold: int64(rand.Intn(5000)),
			RatingStars:    4 + rand.Float64(),
			LikedCount:     int64(rand.Intn(300)),
			ShopLocation:   "Bangkok",
			Currency:       "THB",
			ImageURL:       &img,
			DetailURL:      &detail,
			CategoryID:     int64(11000000 + i%7),
			CreatedAt:      time.Now().Unix(),
		})
	}
	return listings, nil
}
