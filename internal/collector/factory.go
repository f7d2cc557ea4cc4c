package collector

import (
	"fmt"
	"os"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// NewCollector selects the correct implementation based on the MODE
func NewCollector() (domain.Collector, error) {
	userAgent := os.Getenv("COLLECTOR_USER_AGENT")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	switch mode := os.Getenv("COLLECTOR_MODE"); mode {
	case "", "shopee":
		return NewShopeeClient(userAgent), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'shopee' or 'mock')", mode)
	}
}
