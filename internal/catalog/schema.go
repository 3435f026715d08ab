package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const manifestSchemaURL = "go-rules://schemas/manifest.json"

const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title", "abstract", "version", "categories"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "abstract": {"type": "string", "minLength": 1},
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "categories": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "impact": {
            "type": "string",
            "enum": ["CRITICAL", "HIGH", "MEDIUM-HIGH", "MEDIUM", "LOW-MEDIUM", "LOW"]
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(manifestSchemaURL, strings.NewReader(manifestSchema)); err != nil {
			compileErr = fmt.Errorf("catalog: register manifest schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(manifestSchemaURL)
	})
	return compiledSchema, compileErr
}

func validateSchema(data []byte) error {
	compiled, err := schema()
	if err != nil {
		return err
	}

	var payload any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return fmt.Errorf("catalog: manifest is not valid JSON: %w", err)
	}

	if err := compiled.Validate(payload); err != nil {
		return fmt.Errorf("catalog: manifest schema validation: %w", err)
	}
	return nil
}
