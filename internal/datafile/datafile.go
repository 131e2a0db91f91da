// Package datafile loads static YAML tables and validates them against a
// JSON Schema before decoding them into Go values.
package datafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Schema names a JSON Schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

// ErrInvalidData indicates data that does not conform to its schema.
type ErrInvalidData struct {
	Source string
	Err    error
}

func (e *ErrInvalidData) Error() string {
	return fmt.Sprintf("invalid data in %s: %v", e.Source, e.Err)
}

func (e *ErrInvalidData) Unwrap() error { return e.Err }

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Decode parses YAML from raw, validates it against schema and decodes it
// into out. source names the data in error messages.
func Decode(source string, raw []byte, schema *Schema, out any) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidData{Source: source, Err: fmt.Errorf("parse yaml: %w", err)}
	}

	// Round-trip through JSON so the validator and the decoder see the
	// same JSON value model.
	js, err := json.Marshal(doc)
	if err != nil {
		return &ErrInvalidData{Source: source, Err: fmt.Errorf("convert to json: %w", err)}
	}

	if schema != nil {
		inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(js))
		if err != nil {
			return &ErrInvalidData{Source: source, Err: fmt.Errorf("parse json: %w", err)}
		}
		compiled, err := compiledSchema(schema)
		if err != nil {
			return fmt.Errorf("compile schema %q: %w", schema.Name, err)
		}
		if err := compiled.Validate(inst); err != nil {
			return &ErrInvalidData{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
		}
	}

	if err := json.Unmarshal(js, out); err != nil {
		return &ErrInvalidData{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler expects a JSON value model, so normalize through JSON.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	defParsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
