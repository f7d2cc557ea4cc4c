package storage

import (
	"encoding/json"
	"io"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
	"github.com/xuri/excelize/v2"
)

var xlsxHeader = []any{
	"itemid", "shopid", "name", "price", "currency", "historical_sold",
	"rating_star", "liked_count", "shop_location", "commission_rate", "score", "url",
}

// WriteXLSX renders a ranked result set as a single-sheet spreadsheet, the
// format operators round-trip commission tables through.
func WriteXLSX(w io.Writer, listings []domain.Listing) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return err
	}

	for i, l := range listings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			l.ItemID, l.ShopID, l.Name, l.Price, l.Currency, l.HistoricalSold,
			l.RatingStars, l.LikedCount, l.ShopLocation,
			deref(l.CommissionRate), deref(l.Score), derefStr(l.DetailURL),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// WriteNDJSON streams one listing per line.
func WriteNDJSON(w io.Writer, listings []domain.Listing) error {
	enc := json.NewEncoder(w)
	for _, l := range listings {
		if err := enc.Encode(l); err != nil {
			return err
		}
	}
	return nil
}

func deref(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefStr(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
