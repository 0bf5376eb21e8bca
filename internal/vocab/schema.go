package vocab

// catalogSchema validates a catalog file before any row is imported.
// Kept permissive on optional fields; id may be omitted and is then
// generated at import time.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"words": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":                 map[string]any{"type": "string"},
					"sourceText":         map[string]any{"type": "string", "minLength": 1},
					"sourceLanguage":     map[string]any{"type": "string", "minLength": 1},
					"sourceUsageExample": map[string]any{"type": "string"},
					"targetText":         map[string]any{"type": "string", "minLength": 1},
					"targetLanguage":     map[string]any{"type": "string", "minLength": 1},
					"targetUsageExample": map[string]any{"type": "string"},
				},
				"required":             []any{"sourceText", "sourceLanguage", "targetText", "targetLanguage"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"name", "words"},
	"additionalProperties": false,
}
