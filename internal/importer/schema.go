package importer

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// importSchema is the JSON shape of an import document: a single
// subject-shaped object or an array of them. Per-type field requirements
// are checked separately in Go so failures can name the offending
// subject/topic/question; the schema only pins the coarse structure.
var importSchema = map[string]any{
	"oneOf": []any{
		map[string]any{"$ref": "#/$defs/subject"},
		map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/subject"},
		},
	},
	"$defs": map[string]any{
		"subject": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":     map[string]any{"type": "string"},
				"name":   map[string]any{"type": "string", "minLength": 1},
				"topics": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/topic"}},
			},
			"required": []any{"name", "topics"},
		},
		"topic": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":        map[string]any{"type": "string"},
				"name":      map[string]any{"type": "string", "minLength": 1},
				"questions": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/question"}},
			},
			"required": []any{"name", "questions"},
		},
		"question": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":   map[string]any{"type": "string"},
				"type": map[string]any{"type": "string"},
			},
			"required": []any{"type"},
		},
	},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// compiledImportSchema compiles the import schema once and caches it.
func compiledImportSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler expects a parsed JSON value, not Go maps with
		// typed values. Round-trip through encoding/json.
		raw, err := json.Marshal(importSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal import schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			schemaErr = fmt.Errorf("parse import schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://quizdeck-import.json"
		if err := c.AddResource(url, parsed); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}

// validateShape checks the raw document against the import schema.
func validateShape(data []byte) error {
	schema, err := compiledImportSchema()
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("import document shape: %w", err)
	}
	return nil
}
