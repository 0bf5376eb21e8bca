package vocab

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "list.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalogXLSX(t *testing.T) {
	path := writeTestWorkbook(t, [][]any{
		{"Source", "Source example", "Target", "Target example"},
		{"dog", "The dog barks.", "собака", "Собака лает."},
		{"cat", "", "кот", ""},
		{"", "", "пусто", ""}, // missing source text, skipped
		{"  horse  ", "", "  лошадь  ", ""},
	})

	cat, err := LoadCatalogXLSX(path, "animals", DefaultXLSXLayout("en", "ru"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Name != "animals" {
		t.Errorf("name = %q", cat.Name)
	}
	if len(cat.Words) != 3 {
		t.Fatalf("words = %d, want 3", len(cat.Words))
	}

	first := cat.Words[0]
	if first.SourceText != "dog" || first.TargetText != "собака" {
		t.Errorf("first row = %+v", first)
	}
	if first.SourceLanguage != "en" || first.TargetLanguage != "ru" {
		t.Errorf("languages = %q/%q", first.SourceLanguage, first.TargetLanguage)
	}
	if first.SourceUsageExample != "The dog barks." || first.TargetUsageExample != "Собака лает." {
		t.Errorf("examples = %+v", first)
	}
	if first.ID == "" {
		t.Error("imported rows need generated ids")
	}

	// Cell text is trimmed.
	if cat.Words[2].SourceText != "horse" || cat.Words[2].TargetText != "лошадь" {
		t.Errorf("trimmed row = %+v", cat.Words[2])
	}
}

func TestLoadCatalogXLSXEmptySheet(t *testing.T) {
	path := writeTestWorkbook(t, [][]any{
		{"Source", "Source example", "Target", "Target example"},
	})

	if _, err := LoadCatalogXLSX(path, "empty", DefaultXLSXLayout("en", "ru")); err == nil {
		t.Error("header-only workbook should be rejected")
	}
}

func TestLoadCatalogXLSXMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")
	if _, err := LoadCatalogXLSX(path, "x", DefaultXLSXLayout("en", "ru")); err != nil {
		return
	}
	t.Error("expected error for missing workbook")
}
