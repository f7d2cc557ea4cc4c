package ingest

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
)

// LoadCategories reads the ordered category reference list from a JSON file.
// Entries without a usable keyword are dropped (fail-soft).
func LoadCategories(path string) ([]domain.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []domain.Category
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var categories []domain.Category
	for _, cat := range raw {
		var keywords []string
		for _, k := range cat.Keywords {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) == 0 {
			continue
		}
		categories = append(categories, domain.Category{Name: cat.Name, Keywords: keywords})
	}
	return categories, nil
}
