package vocab

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// XLSXLayout describes where catalog fields live in a spreadsheet.
// Columns are 0-based indexes into each row.
type XLSXLayout struct {
	Sheet            string
	SkipHeader       bool
	SourceTextCol    int
	SourceExampleCol int
	TargetTextCol    int
	TargetExampleCol int
	SourceLanguage   string
	TargetLanguage   string
}

// DefaultXLSXLayout matches the layout our published word-list workbooks use:
// source | source example | target | target example, header row present.
func DefaultXLSXLayout(sourceLang, targetLang string) XLSXLayout {
	return XLSXLayout{
		Sheet:            "Sheet1",
		SkipHeader:       true,
		SourceTextCol:    0,
		SourceExampleCol: 1,
		TargetTextCol:    2,
		TargetExampleCol: 3,
		SourceLanguage:   sourceLang,
		TargetLanguage:   targetLang,
	}
}

// LoadCatalogXLSX reads a word list from an .xlsx workbook. Rows missing
// either text cell are skipped; every imported row gets a generated id.
func LoadCatalogXLSX(path, name string, layout XLSXLayout) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := layout.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	cat := &Catalog{Name: name}
	for i, row := range rows {
		if i == 0 && layout.SkipHeader {
			continue
		}
		source := cell(row, layout.SourceTextCol)
		target := cell(row, layout.TargetTextCol)
		if source == "" || target == "" {
			continue
		}
		cat.Words = append(cat.Words, Item{
			ID:                 uuid.NewString(),
			SourceText:         source,
			SourceLanguage:     layout.SourceLanguage,
			SourceUsageExample: cell(row, layout.SourceExampleCol),
			TargetText:         target,
			TargetLanguage:     layout.TargetLanguage,
			TargetUsageExample: cell(row, layout.TargetExampleCol),
		})
	}

	if len(cat.Words) == 0 {
		return nil, fmt.Errorf("no usable rows in sheet %q of %s", sheet, path)
	}
	return cat, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
