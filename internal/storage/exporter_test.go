package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
	"github.com/xuri/excelize/v2"
)

func sample() []domain.Listing {
	rate := 0.05
	score := 45.0
	url := "https://shopee.co.th/product/9/7"
	return []domain.Listing{
		{ItemID: 7, ShopID: 9, Name: "Fan", Price: 1.5, Currency: "THB",
			HistoricalSold: 900, RatingStars: 4.8, CommissionRate: &rate, Score: &score, DetailURL: &url},
		{ItemID: 8, ShopID: 9, Name: "Kettle", Price: 3.2, Currency: "THB", HistoricalSold: 100},
	}
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first domain.Listing
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 not valid JSON: %v", err)
	}
	if first.ItemID != 7 || first.CommissionRate == nil || *first.CommissionRate != 0.05 {
		t.Errorf("round-trip mismatch: %+v", first)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 listings", len(rows))
	}
	if rows[0][0] != "itemid" || rows[0][9] != "commission_rate" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "Fan" {
		t.Errorf("row 1 name = %q", rows[1][2])
	}
	if rows[1][3] != "1.5" {
		t.Errorf("row 1 price = %q", rows[1][3])
	}
	// Unresolved commission stays blank rather than zero-filled
	if len(rows[2]) > 9 && rows[2][9] != "" {
		t.Errorf("row 2 commission = %q, want empty", rows[2][9])
	}
}
