package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCategories(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCategories(t *testing.T) {
	path := writeCategories(t, `[
		{"name": "Home", "keywords": ["fan", "cooler"]},
		{"name": "Empty", "keywords": []},
		{"name": "Blank", "keywords": ["  "]},
		{"name": "Kitchen", "keywords": [" kettle "]}
	]`)

	cats, err := LoadCategories(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("got %d categories, want 2 (keywordless entries dropped)", len(cats))
	}
	if cats[0].Name != "Home" || cats[1].Name != "Kitchen" {
		t.Errorf("order not preserved: %v", cats)
	}
	if cats[1].Keywords[0] != "kettle" {
		t.Errorf("keywords should be trimmed, got %q", cats[1].Keywords[0])
	}
}

func TestLoadCategoriesErrors(t *testing.T) {
	if _, err := LoadCategories(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := LoadCategories(writeCategories(t, "{not json")); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}
