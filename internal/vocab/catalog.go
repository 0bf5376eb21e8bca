package vocab

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Catalog is an ordered word list as loaded from an import file.
type Catalog struct {
	Name  string `json:"name"`
	Words []Item `json:"words"`
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledCatalogSchema compiles the catalog schema once and caches it.
func compiledCatalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw bytes.
		b, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(b, &parsed); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://catalog.json"
		if err := c.AddResource(url, parsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// ParseCatalog validates raw JSON against the catalog schema and decodes it.
// Words without an id get a generated UUID.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledCatalogSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	var cat Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	for i := range cat.Words {
		if cat.Words[i].ID == "" {
			cat.Words[i].ID = uuid.NewString()
		}
	}
	return &cat, nil
}

// LoadCatalogFile reads and parses a JSON catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(raw)
}
