package commission

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Store holds operator-supplied commission overrides keyed by item id. Ids are
// strings to avoid integer-width ambiguity across providers. The table lives
// for the process lifetime; ingestion is the only writer.
type Store struct {
	mu     sync.RWMutex
	manual map[string]float64
}

func NewStore() *Store {
	return &Store{manual: make(map[string]float64)}
}

// IngestCSV parses header-delimited rows with `itemid` and `commission_rate`
// columns and returns how many rows were stored. Bad rows are skipped, never
// fatal; a later duplicate id overwrites an earlier one.
func (s *Store) IngestCSV(data []byte) int {
	// Best-effort decode: drop undecodable bytes rather than fail the batch.
	// Spreadsheet exports often lead with a BOM, which would make the
	// header's first column unmatchable.
	text := strings.TrimPrefix(strings.ToValidUTF8(string(data), ""), "\uFEFF")
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return 0
	}
	idCol, rateCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "itemid":
			idCol = i
		case "commission_rate":
			rateCol = i
		}
	}
	if idCol < 0 || rateCol < 0 {
		return 0
	}

	count := 0
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if idCol >= len(record) || rateCol >= len(record) {
			continue
		}
		itemID := strings.TrimSpace(record[idCol])
		if itemID == "" {
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(record[rateCol]), 64)
		if err != nil {
			continue
		}
		s.manual[itemID] = rate
		count++
	}
	return count
}

// Lookup returns the subset of ids present in the store. Pure, no side effects.
func (s *Store) Lookup(ids []string) map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make(map[string]float64)
	for _, id := range ids {
		if rate, ok := s.manual[id]; ok {
			found[id] = rate
		}
	}
	return found
}

// Len reports how many overrides are currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.manual)
}
