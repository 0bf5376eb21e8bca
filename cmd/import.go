package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lingvo-app/lingvo/internal/vocab"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a word list from a JSON or XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		path := args[0]

		catalog, err := loadImportFile(cmd, path)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := st.ListRepo().Import(ctx, *catalog); err != nil {
			return fmt.Errorf("import %q: %w", catalog.Name, err)
		}
		fmt.Printf("Imported %q: %d words\n", catalog.Name, len(catalog.Words))
		return nil
	},
}

func init() {
	importCmd.Flags().String("name", "", "List name (defaults to the file name without extension)")
	importCmd.Flags().String("source-lang", "en", "Source language code for XLSX imports")
	importCmd.Flags().String("target-lang", "ru", "Target language code for XLSX imports")
}

// loadImportFile parses the file by extension: .xlsx goes through the
// workbook loader, everything else is treated as a JSON catalog.
func loadImportFile(cmd *cobra.Command, path string) (*vocab.Catalog, error) {
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		sourceLang, _ := cmd.Flags().GetString("source-lang")
		targetLang, _ := cmd.Flags().GetString("target-lang")
		return vocab.LoadCatalogXLSX(path, name, vocab.DefaultXLSXLayout(sourceLang, targetLang))
	}

	catalog, err := vocab.LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("name") {
		catalog.Name = name
	}
	return catalog, nil
}
